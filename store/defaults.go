package store

import "github.com/mbolis/reqlicit/model"

// DefaultQuestions is the starter healthcare questionnaire served until a
// designer saves a form.
func DefaultQuestions() []model.Question {
	return []model.Question{
		{
			ID:      1,
			Type:    model.SingleQuestion,
			Prompt:  "How comfortable are you with using digital tools for managing your healthcare?",
			Options: []string{"Not Comfortable", "Somewhat Comfortable", "Comfortable", "Very Comfortable"},
		},
		{
			ID:      2,
			Type:    model.SingleQuestion,
			Prompt:  "What is your preferred method for interacting with healthcare professionals?",
			Options: []string{"In-Person Consultations", "Video Calls", "Phone Calls", "Chat/Message-based Communication"},
		},
		{
			ID:      3,
			Type:    model.MultipleQuestion,
			Prompt:  "Which human-centric aspects would you most like to see prioritized in healthcare treatment plans?",
			Options: []string{"Physical Well-being", "Emotional Support", "Cultural Sensitivity", "Social Connections", "Flexible Treatment Plans"},
		},
		{
			ID:      4,
			Type:    model.MultipleQuestion,
			Prompt:  "What elements of healthcare interactions improve your treatment experience the most?",
			Options: []string{"Empathy and Understanding", "Clear Communication", "Short Wait Times", "Convenient Scheduling", "Personalized Care Plans"},
		},
		{
			ID:      5,
			Type:    model.MultipleQuestion,
			Prompt:  "Which barriers do you feel prevent healthcare systems from fully understanding patients’ personal needs?",
			Options: []string{"Lack of time for personalized consultation", "Limited understanding of patient backgrounds", "Inflexible treatment plans", "Insufficient options for social and emotional support"},
		},
		{
			ID:     6,
			Type:   model.TextQuestion,
			Prompt: "What are some specific challenges you have faced in healthcare settings that could be improved with a more human-centered approach?",
		},
		{
			ID:     7,
			Type:   model.TextQuestion,
			Prompt: "In your view, what does “human-centric healthcare” mean, and how do you think it would benefit your health experience?",
		},
		{
			ID:     8,
			Type:   model.TextQuestion,
			Prompt: "Describe a time when you felt truly supported by a healthcare provider. What aspects of their approach were most impactful for you?",
		},
		{
			ID:     9,
			Type:   model.TextQuestion,
			Prompt: "What kind of support would help you feel more engaged and motivated in your healthcare, especially if you are unable to attend appointments in person?",
		},
		{
			ID:     10,
			Type:   model.TextQuestion,
			Prompt: "What additional features or services would you find beneficial in a healthcare system focused on your personal needs?",
		},
	}
}
