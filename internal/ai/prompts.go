package ai

import (
	"encoding/json"
	"fmt"
)

func asJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func greetingPrompt(careerPath string) string {
	return fmt.Sprintf(`Write a warm, professional phone greeting for someone curious about a career in %s.
Keep it to 2-3 sentences and finish with a question about what draws them to the field.
It will be read aloud, so keep it conversational and avoid lists or markdown.`, careerPath)
}

func replyPrompt(userInput, careerPath string, conversation any) string {
	return fmt.Sprintf(`You are a career mentor who specialises in %s, speaking with a mentee on the phone.
The mentee just said: "%s"

Conversation so far: %s

Reply naturally and helpfully:
1. Acknowledge what they said.
2. Offer a relevant insight or piece of guidance.
3. Close with one follow-up question that deepens the conversation.

Keep it short and conversational. It will be read aloud.`, careerPath, userInput, asJSON(conversation))
}

func advicePrompt(careerPath, topic string) string {
	return fmt.Sprintf(`Give specific advice about %s for someone building a career in %s.
Make it practical and actionable.
Keep it brief and end by asking what they think of the advice.`, topic, careerPath)
}

func todosPrompt(history []Exchange, careerPath string) string {
	return fmt.Sprintf(`Using this career mentoring conversation, write actionable todo items for the mentee.

Conversation history:
%s

Career path: %s

Produce 3-5 todo items that move them forward in %s. Each item should be
specific and measurable, tied to what was discussed, achievable soon, and relevant to their goals.

Respond with only a JSON array of objects shaped like:
[
  {
    "title": "Short, clear title",
    "description": "What to do and why",
    "priority": "high|medium|low"
  }
]

Prefer concrete steps such as skill building, networking, project work, or courses.`, asJSON(history), careerPath, careerPath)
}

func initialQuestionPrompt() string {
	return `You are a career guidance assistant. Write the opening multiple-choice question of a career assessment.

It should uncover the user's interests, skills, and preferences.

Respond with only a JSON object:
{
  "question": "the assessment question",
  "options": ["option1", "option2", "option3", "option4", "option5", "option6"],
  "multipleChoice": true,
  "imageUrl": "https://example.com/career-assessment-image.jpg",
  "description": "what this question measures"
}

Rules:
1. Exactly 6 options, each a distinct career interest or skill area.
2. multipleChoice must be true.
3. Include an image URL (a placeholder is fine) and a short description.
4. Valid JSON only.`
}

func followUpQuestionPrompt(lastAnswer string, asked int) string {
	return fmt.Sprintf(`You are a career guidance assistant running a %d-question career assessment.

The user's latest selections: %s
Questions asked so far: %d

Write question %d of %d. Make it specific to their interests so it narrows down a career path.
Progress logically through skills, experience, preferences, and goals.

Respond with only a JSON object:
{
  "question": "the follow-up question",
  "options": ["option1", "option2", "option3", "option4"],
  "multipleChoice": false,
  "description": "short context for the question"
}

Rules:
1. Exactly 4 meaningful options.
2. multipleChoice must be false.
3. Valid JSON only.`, AssessmentLength, lastAnswer, asked, asked+1, AssessmentLength)
}

func roadmapsPrompt(history []QA) string {
	return fmt.Sprintf(`You are a career guidance assistant. Build career roadmaps that render as ReactFlow graphs.

Assessment history: %s

Respond with only a JSON object:
{
  "roadmaps": [
    {
      "title": "Career Title",
      "description": "Short description of the path",
      "nodes": [
        {"id": "1", "type": "default", "position": {"x": 250, "y": 0}, "data": {"label": "Milestone"}}
      ],
      "edges": [
        {"id": "e1-2", "source": "1", "target": "2"}
      ]
    }
  ]
}

Rules:
1. Produce THREE roadmaps relevant to the history (or general exploration if it is empty).
2. Each roadmap has a title, a description, and at least 6 nodes for milestones, skills, or stages.
3. Node ids are unique strings; edges connect them in a logical progression with ids "e{source}-{target}".
4. Lay nodes out top to bottom and left to right with at least 100px spacing.
5. Valid JSON only.`, asJSON(history))
}
