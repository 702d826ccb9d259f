package formatters

import "context"

const experienceInstruction = "You are a professional resume writer. Rewrite the following job description bullet points for a CV. Make them more impactful by using the STAR (Situation, Task, Action, Result) method where possible and starting each point with a strong action verb. Ensure the output is a list of bullet points starting with '•'."

type ExperienceFormatter struct {
	enhancer Enhancer
	language string
}

func NewExperienceFormatter(e Enhancer, language string) *ExperienceFormatter {
	return &ExperienceFormatter{enhancer: e, language: language}
}

func (ef *ExperienceFormatter) Instruction() string {
	return withLanguage(experienceInstruction, ef.language)
}

func (ef *ExperienceFormatter) Format(ctx context.Context, text string) string {
	return ef.enhancer.Enhance(ctx, ef.Instruction(), text)
}
