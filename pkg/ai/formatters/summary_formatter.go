package formatters

import (
	"context"
	"fmt"
)

// Enhancer sends one instruction and one piece of text to the model.
type Enhancer interface {
	Enhance(ctx context.Context, instruction, text string) string
}

// Formatter rewrites a single CV field.
type Formatter interface {
	Format(ctx context.Context, text string) string
}

const summaryInstruction = "You are a professional resume writer. Rewrite the following summary to be more concise, professional, and impactful for a CV. Use strong action verbs."

type SummaryFormatter struct {
	enhancer Enhancer
	language string
}

func NewSummaryFormatter(e Enhancer, language string) *SummaryFormatter {
	return &SummaryFormatter{enhancer: e, language: language}
}

func (sf *SummaryFormatter) Instruction() string {
	return withLanguage(summaryInstruction, sf.language)
}

func (sf *SummaryFormatter) Format(ctx context.Context, text string) string {
	return sf.enhancer.Enhance(ctx, sf.Instruction(), text)
}

func withLanguage(instr, language string) string {
	if language == "" {
		return instr
	}
	return instr + fmt.Sprintf(" Write the result in %s.", language)
}
