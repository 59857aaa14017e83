package generation

import (
	"bytes"
	"fmt"
	"text/template"
)

// System instructions and temperatures per content kind.
const (
	lessonSystem      = "You are an expert teacher creating educational content for students in grades 6-10. Make content clear, accurate, and engaging."
	quizSystem        = "You are an expert educator creating assessment questions."
	flashcardSystem   = "You are an expert educator creating study materials."
	worksheetSystem   = "You are an expert educator creating practice worksheets."
	imagePromptSystem = "You are an expert at creating educational visual content descriptions."

	lessonTemperature    = float32(0.7)
	quizTemperature      = float32(0.8)
	flashcardTemperature = float32(0.7)
	worksheetTemperature = float32(0.8)
	imageTemperature     = float32(0.7)
)

var prompts = template.Must(template.New("prompts").Parse(`
{{- define "lesson" -}}
Create a comprehensive lesson on: "{{.Topic}}"

Language: {{.Language}}

Provide:
1. A clear title for the lesson
2. A detailed explanation (200-300 words)
3. 5-6 key summary points
4. 4-5 important key points to remember

Format as JSON:
{
  "title": "Lesson title",
  "explanation": "Detailed explanation...",
  "summary": ["point 1", "point 2", ...],
  "keyPoints": ["key point 1", "key point 2", ...]
}
{{- end}}

{{- define "quiz" -}}
Create {{.Count}} multiple choice questions about: "{{.Topic}}"

Each question should:
- Test understanding of key concepts
- Have 4 options (A, B, C, D)
- Include the correct answer
- Include a brief explanation

Format as JSON array:
[
  {
    "question": "Question text?",
    "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
    "correct": "A) Option 1",
    "explanation": "Why this is correct..."
  }
]
{{- end}}

{{- define "flashcards" -}}
Create {{.Count}} flashcards for studying: "{{.Topic}}"

Each flashcard should:
- Have a clear question or term on the front
- Have a concise answer or definition on the back
- Cover important concepts

Format as JSON array:
[
  {
    "front": "Question or term",
    "back": "Answer or definition"
  }
]
{{- end}}

{{- define "worksheet" -}}
Create worksheet questions for: "{{.Topic}}"

Include:
- 5 multiple choice questions
- 5 short answer questions
- 5 fill in the blank questions

Format as JSON:
{
  "mcq": [{"question": "...", "options": ["A", "B", "C", "D"], "answer": "A"}],
  "short": [{"question": "...", "answer": "..."}],
  "fillInBlank": [{"question": "The ___ is...", "answer": "..."}]
}
{{- end}}

{{- define "image" -}}
Create a detailed image prompt for an educational diagram about: "{{.Topic}}"

The prompt should describe a clear, simple, colorful diagram suitable for students learning this topic. Focus on visual clarity and educational value.

Respond with just the image prompt, no extra text.
{{- end}}
`))

type promptData struct {
	Topic    string
	Language string
	Count    int
}

func renderPrompt(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}
	return buf.String(), nil
}
