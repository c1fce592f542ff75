package prompts

import "fmt"

const slidesPromptTemplate = `Create a visually stunning and professional slide presentation on the topic: "%[1]s".
The presentation should include:
1. A title slide (add class="slide title-slide")
2. An agenda or overview slide (add class="slide content-slide")
3. 4-6 content slides with key points and brief explanations (add class="slide content-slide")
4. A conclusion slide (add class="slide conclusion-slide")

Format the slides using HTML and CSS. Each slide should have a unique, visually appealing background with shapes, gradients, or patterns.
Use a cohesive color scheme throughout the presentation, with vibrant accents and modern typography.
Ensure text is always readable against the background by using appropriate contrast and text shadows if necessary.
Include relevant SVG icons, charts, or illustrations to visualize concepts and enhance the overall design.

Slide structure:
<div class="slide [slide-type]">
    <div class="slide-background">
        <!-- Add SVG shapes, gradients, or patterns here for an interesting background -->
    </div>
    <div class="slide-content">
        <!-- Slide content goes here -->
    </div>
</div>

Additional content uploaded by user to incorporate: %[2]s

Keep in mind the user input: %[1]s

Make each slide visually distinct while maintaining a cohesive theme. Use creative layouts, such as split screens, grids, or asymmetrical designs to make the content more engaging.
For content slides, use bullet points, short paragraphs, or infographic-style layouts to present information clearly and concisely.

IMPORTANT: Do not include any text like "Slide X:" or "**Slide X:" at the beginning of each slide. Do not use ` + "```html or ```" + ` markers. Simply provide the HTML content for each slide directly.`

const scriptPromptTemplate = `Create an engaging and informative presentation script based on the following:

Topic: %s

Slides Content:
%s

Additional Context:
%s

For each slide, provide a detailed script that:
1. Introduces the slide's main topic
2. Elaborates on key points
3. Provides relevant examples or anecdotes
4. Transitions smoothly to the next slide

Format the script as follows:

[Slide 1: Title]
Script content for slide 1...

[Slide 2: Title]
Script content for slide 2...

Continue for all slides. Aim for about 2-3 minutes of speaking time per slide. Use a conversational tone while maintaining professionalism.
Incorporate the additional context where relevant to enrich the presentation.
`

// Slides builds the slide-generation prompt. Inputs are embedded as given;
// an empty topic is not rejected here.
func Slides(topic, supplementary string) string {
	return fmt.Sprintf(slidesPromptTemplate, topic, supplementary)
}

// Script builds the narration prompt for a deck that was already generated.
// The model is asked to head every block with a "[Slide N: Title]" line.
func Script(topic, slides, supplementary string) string {
	return fmt.Sprintf(scriptPromptTemplate, topic, slides, supplementary)
}
