// Package prompts holds the fixed instruction templates sent to the
// generative model and the completion heuristic applied to its output.
// The wording is load-bearing: the interviewer persona instructs the model
// to finish with ClosingSentence, and IsConcluding detects exactly that.
package prompts

import (
	"fmt"
	"strings"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

// ClosingSentence is the exact sentence the model is instructed to end the
// interview with.
const ClosingSentence = "That concludes our technical interview. Thank you for your time!"

// FallbackQuestion is returned whenever the model call fails. Generation
// degrades, it never errors.
const FallbackQuestion = "Can you tell me more about your experience with web development technologies?"

// TranscribeInstruction accompanies raw audio sent to the model.
const TranscribeInstruction = "Transcribe this audio exactly as spoken. Return only the transcription text, nothing else."

// Greeting is the templated opening question. It is produced server-side,
// not by the model.
func Greeting(role interview.Role) string {
	return fmt.Sprintf("Hello, I am your AI interviewer. To get started, please tell me a bit about yourself and your background as a %s.", role)
}

// StartedMessage confirms session creation in the start response.
const StartedMessage = "Interview started"

// NextQuestion builds the deterministic prompt for the next interview
// question from the transcript so far, the candidate's latest answer and the
// interview configuration.
func NextQuestion(history []interview.Entry, latestAnswer string, cfg interview.Config) string {
	return fmt.Sprintf(`You are a professional interviewer for a tech company conducting a %[2]s level technical interview for a %[1]s position.

Your goal is to assess the candidate's technical skills, problem-solving abilities, and knowledge.

Interview Guidelines:
- Ask role-specific technical questions appropriate for %[2]s level
- Adapt difficulty based on the candidate's answers (if they struggle, ask simpler follow-ups; if they excel, ask harder ones)
- Ask follow-ups if answers are vague or need clarification
- Keep questions concise (1-2 sentences maximum)
- Never give hints or answers
- Ask one question at a time
- Progress naturally through different technical topics (e.g., fundamentals, architecture, best practices, problem-solving)
- After 8-10 questions, start wrapping up the interview

Previous conversation:
%[3]s

Candidate's latest answer: %[4]s

Based on this conversation, generate the NEXT interview question. If you believe the interview has covered sufficient ground (8-10+ questions), you may end with: %[5]q

Return ONLY the question text, nothing else.`,
		cfg.Role, cfg.Difficulty, FormatHistory(history), latestAnswer, ClosingSentence)
}

// FormatHistory serializes the transcript as alternating "Candidate:" /
// "Interviewer:" lines in chronological order, blank-line separated.
func FormatHistory(entries []interview.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Speaker == interview.SpeakerCandidate {
			lines = append(lines, "Candidate: "+e.Text)
		} else {
			lines = append(lines, "Interviewer: "+e.Text)
		}
	}
	return strings.Join(lines, "\n\n")
}

// IsConcluding is the completion heuristic: a generated question ends the
// interview when it contains either phrase of the closing sentence,
// case-insensitively. A paraphrase that drops both phrases goes undetected;
// the prompt pins the exact closing sentence to keep this reliable.
func IsConcluding(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "concludes our") || strings.Contains(lower, "thank you for your time")
}
