package chains

import (
	"context"
	"fmt"
	"strings"
)

// QuestionRouter decides which data source should answer a question.
type QuestionRouter struct {
	Invoker Invoker
}

// Route classifies the question into one of the three routes.
func (r *QuestionRouter) Route(ctx context.Context, question string) (Route, error) {
	var out routeQuery
	if err := r.Invoker.CompleteJSON(ctx, questionRoutingSystemPrompt, question, &out); err != nil {
		return "", fmt.Errorf("question routing: %w", err)
	}
	route, err := ParseRoute(strings.TrimSpace(out.DataSource))
	if err != nil {
		return "", fmt.Errorf("question routing: %w", err)
	}
	return route, nil
}

// RetrievalGrader judges whether a retrieved document is relevant to a question.
type RetrievalGrader struct {
	Invoker Invoker
}

// Grade returns true when the document is relevant.
func (g *RetrievalGrader) Grade(ctx context.Context, question, document string) (bool, error) {
	user := fmt.Sprintf("Retrieved document: \n\n %s \n\n User question: %s", document, question)
	var out binaryScore
	if err := g.Invoker.CompleteJSON(ctx, retrievalGradingSystemPrompt, user, &out); err != nil {
		return false, fmt.Errorf("retrieval grading: %w", err)
	}
	return isYes(out.BinaryScore), nil
}

// HallucinationGrader judges whether a generation is grounded in a set of facts.
type HallucinationGrader struct {
	Invoker Invoker
}

// Grade returns true when the generation is supported by the facts.
func (g *HallucinationGrader) Grade(ctx context.Context, facts, generation string) (bool, error) {
	user := fmt.Sprintf("Set of facts: \n\n %s \n\n LLM generation: %s", facts, generation)
	var out binaryScore
	if err := g.Invoker.CompleteJSON(ctx, hallucinationGradingSystemPrompt, user, &out); err != nil {
		return false, fmt.Errorf("hallucination grading: %w", err)
	}
	return isYes(out.BinaryScore), nil
}

// AnswerGrader judges whether a generation resolves the question.
type AnswerGrader struct {
	Invoker Invoker
}

// Grade returns true when the answer resolves the question.
func (g *AnswerGrader) Grade(ctx context.Context, question, generation string) (bool, error) {
	user := fmt.Sprintf("User question: \n\n %s \n\n LLM generation: %s", question, generation)
	var out binaryScore
	if err := g.Invoker.CompleteJSON(ctx, answerGradingSystemPrompt, user, &out); err != nil {
		return false, fmt.Errorf("answer grading: %w", err)
	}
	return isYes(out.BinaryScore), nil
}

// QuestionRewriter reformulates a question for better graph retrieval.
type QuestionRewriter struct {
	Invoker Invoker
}

// Rewrite returns an improved version of the question.
func (r *QuestionRewriter) Rewrite(ctx context.Context, question string) (string, error) {
	user := fmt.Sprintf("Initial question: \n\n %s \n Formulate an improved question.", question)
	var out queryRefinement
	if err := r.Invoker.CompleteJSON(ctx, questionRewritingSystemPrompt, user, &out); err != nil {
		return "", fmt.Errorf("question rewriting: %w", err)
	}
	refined := strings.TrimSpace(out.RefinedQuestion)
	if refined == "" {
		return "", fmt.Errorf("question rewriting: empty refinement")
	}
	return refined, nil
}

// AnswerGenerator produces the final answer, either from retrieved context
// or from the model's own knowledge.
type AnswerGenerator struct {
	Invoker Invoker
}

// Generate answers the question using the formatted context.
func (g *AnswerGenerator) Generate(ctx context.Context, question, contextText string) (string, error) {
	user := fmt.Sprintf("Question: %s\nContext: %s\nAnswer:", question, contextText)
	var out generateAnswer
	if err := g.Invoker.CompleteJSON(ctx, answerGenerationSystemPrompt, user, &out); err != nil {
		return "", fmt.Errorf("answer generation: %w", err)
	}
	return strings.TrimSpace(out.Answer), nil
}

// GenerateFromKnowledge answers an out-of-domain question without context.
func (g *AnswerGenerator) GenerateFromKnowledge(ctx context.Context, question string) (string, error) {
	var out generateAnswer
	if err := g.Invoker.CompleteJSON(ctx, internalAnswerSystemPrompt, question, &out); err != nil {
		return "", fmt.Errorf("internal answer generation: %w", err)
	}
	return strings.TrimSpace(out.Answer), nil
}

func isYes(score string) bool {
	return strings.EqualFold(strings.TrimSpace(score), "yes")
}
