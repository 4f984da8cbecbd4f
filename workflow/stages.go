package workflow

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agrigraph/durag/chains"
	"github.com/agrigraph/durag/kg"
	"github.com/agrigraph/durag/log"
	"github.com/agrigraph/durag/websearch"
)

// Stage names. These are the node names of the compiled graph and the
// labels emitted on streamed steps.
const (
	StageRouteQuestion           = "route_question"
	StageKnowledgeGraphRetrieval = "knowledge_graph_retrieval"
	StageWebSearch               = "web_search"
	StageDocumentGrading         = "retrieved_documents_grading"
	StageQueryTransformation     = "query_transformation"
	StageAnswerGeneration        = "answer_generation"
	StageGroundingCheck          = "hallucination_checking"
	StageQualityCheck            = "answer_quality_checking"
)

// apologyAnswer is returned when context-free generation itself fails.
const apologyAnswer = "I apologize, but I'm unable to answer that question at the moment."

// Router decides which data source should answer a question.
type Router interface {
	Route(ctx context.Context, question string) (chains.Route, error)
}

// DocumentGrader judges the relevance of one retrieved document.
type DocumentGrader interface {
	Grade(ctx context.Context, question, document string) (bool, error)
}

// GroundingGrader judges whether a generation is supported by the facts.
type GroundingGrader interface {
	Grade(ctx context.Context, facts, generation string) (bool, error)
}

// QualityGrader judges whether a generation resolves the question.
type QualityGrader interface {
	Grade(ctx context.Context, question, generation string) (bool, error)
}

// Rewriter reformulates a question for better retrieval.
type Rewriter interface {
	Rewrite(ctx context.Context, question string) (string, error)
}

// Generator produces answers, with retrieved context or without.
type Generator interface {
	Generate(ctx context.Context, question, contextText string) (string, error)
	GenerateFromKnowledge(ctx context.Context, question string) (string, error)
}

// Stages bundles the dependencies and budgets of the workflow's stage
// functions. Router, Generator, KG and Web are required; the graders and
// Rewriter are required only when the corresponding flag enables them.
type Stages struct {
	Router          Router
	DocumentGrader  DocumentGrader
	GroundingGrader GroundingGrader
	QualityGrader   QualityGrader
	Rewriter        Rewriter
	Generator       Generator

	KG  kg.Searcher
	Web websearch.Searcher

	Logger log.Logger

	MaxQueryTransformationRetries int
	MaxHallucinationRetries       int
	MaxConcurrentGrades           int
}

// withDefaults fills zero budgets and a nil logger.
func (st *Stages) withDefaults() {
	if st.Logger == nil {
		st.Logger = log.GetDefaultLogger()
	}
	if st.MaxQueryTransformationRetries <= 0 {
		st.MaxQueryTransformationRetries = DefaultMaxQueryTransformationRetries
	}
	if st.MaxHallucinationRetries <= 0 {
		st.MaxHallucinationRetries = DefaultMaxHallucinationRetries
	}
	if st.MaxConcurrentGrades <= 0 {
		st.MaxConcurrentGrades = DefaultMaxConcurrentGrades
	}
}

// routeQuestion is the entry stage. It records the routing decision in
// the state; the conditional edge after it dispatches on that decision.
// A routing failure defaults to context-free generation, which never
// needs external evidence and always terminates.
func (st *Stages) routeQuestion(ctx context.Context, s State) (State, error) {
	route, err := st.Router.Route(ctx, s.Question)
	if err != nil {
		st.Logger.Warn("routing failed, defaulting to internal knowledge: %v", err)
		s.Route = chains.RouteLLMInternal
		return s, nil
	}
	st.Logger.Info("route question to %s", route)
	s.Route = route
	return s, nil
}

// knowledgeGraphRetrieval queries the graph and replaces the node and
// edge evidence. Provider failure soft-fails to empty evidence. Episode
// and community results, when enabled, join the entity section of the
// context with their own resolved citations.
func (st *Stages) knowledgeGraphRetrieval(ctx context.Context, s State) (State, error) {
	s.NodeContents, s.EdgeContents = nil, nil
	s.NodeCitations, s.EdgeCitations = nil, nil

	opts := kg.SearchOptions{
		Limit:       s.NRetrievedDocuments,
		Nodes:       s.NodeRetrieval,
		Edges:       s.EdgeRetrieval,
		Episodes:    s.EpisodeRetrieval,
		Communities: s.CommunityRetrieval,
	}
	results, err := st.KG.Search(ctx, s.Question, opts)
	if err != nil {
		st.Logger.Warn("knowledge graph search failed: %v", err)
		return s, nil
	}

	for _, n := range results.Nodes {
		content := n.Summary
		if content == "" {
			content = n.Name
		}
		s.NodeContents = append(s.NodeContents, content)
		s.NodeCitations = append(s.NodeCitations, Citation{Title: kg.ResolveDocumentName(n.GroupID)})
	}
	for _, e := range results.Episodes {
		s.NodeContents = append(s.NodeContents, e.Content)
		s.NodeCitations = append(s.NodeCitations, Citation{Title: kg.ResolveDocumentName(e.GroupID)})
	}
	for _, c := range results.Communities {
		s.NodeContents = append(s.NodeContents, c.Summary)
		s.NodeCitations = append(s.NodeCitations, Citation{Title: kg.ResolveDocumentName(c.GroupID)})
	}
	for _, e := range results.Edges {
		s.EdgeContents = append(s.EdgeContents, e.Fact)
		s.EdgeCitations = append(s.EdgeCitations, Citation{Title: kg.ResolveDocumentName(e.GroupID)})
	}

	st.Logger.Info("knowledge graph retrieval: %d nodes, %d edges", len(s.NodeContents), len(s.EdgeContents))
	return s, nil
}

// webSearch queries the web provider. Provider failure soft-fails to
// empty evidence.
func (st *Stages) webSearch(ctx context.Context, s State) (State, error) {
	s.WebContents, s.WebCitations = nil, nil

	results, err := st.Web.Search(ctx, s.Question, s.NWebSearches)
	if err != nil {
		st.Logger.Warn("web search failed: %v", err)
		return s, nil
	}

	for _, r := range results {
		s.WebContents = append(s.WebContents, r.Content)
		s.WebCitations = append(s.WebCitations, Citation{Title: r.Title, URL: r.URL})
	}

	st.Logger.Info("web search: %d results", len(s.WebContents))
	return s, nil
}

// documentGrading filters node and edge evidence by relevance. Grading
// calls fan out concurrently; a call that fails excludes its item
// without aborting the stage.
func (st *Stages) documentGrading(ctx context.Context, s State) (State, error) {
	s.NodeContents, s.NodeCitations = st.gradeSet(ctx, s.Question, s.NodeContents, s.NodeCitations, "node")
	s.EdgeContents, s.EdgeCitations = st.gradeSet(ctx, s.Question, s.EdgeContents, s.EdgeCitations, "edge")
	st.Logger.Info("document grading kept %d nodes, %d edges", len(s.NodeContents), len(s.EdgeContents))
	return s, nil
}

// gradeSet grades one contents slice, preserving relative order and
// citation alignment of the survivors.
func (st *Stages) gradeSet(ctx context.Context, question string, contents []string, citations []Citation, kind string) ([]string, []Citation) {
	if len(contents) == 0 {
		return nil, nil
	}

	keep := make([]bool, len(contents))
	g := new(errgroup.Group)
	g.SetLimit(st.MaxConcurrentGrades)
	for i, content := range contents {
		i, content := i, content
		g.Go(func() error {
			relevant, err := st.DocumentGrader.Grade(ctx, question, content)
			if err != nil {
				st.Logger.Warn("error grading %s content: %v", kind, err)
				return nil
			}
			keep[i] = relevant
			return nil
		})
	}
	_ = g.Wait()

	var keptContents []string
	var keptCitations []Citation
	for i, k := range keep {
		if !k {
			continue
		}
		keptContents = append(keptContents, contents[i])
		if i < len(citations) {
			keptCitations = append(keptCitations, citations[i])
		} else {
			keptCitations = append(keptCitations, Citation{})
		}
	}
	return keptContents, keptCitations
}

// queryTransformation rewrites the question. A rewriting failure keeps
// the question unchanged. The counter tracks attempts, so it increments
// either way.
func (st *Stages) queryTransformation(ctx context.Context, s State) (State, error) {
	s.QueryTransformationRetryCount++

	refined, err := st.Rewriter.Rewrite(ctx, s.Question)
	if err != nil {
		st.Logger.Warn("query transformation failed, keeping question: %v", err)
		return s, nil
	}
	st.Logger.Info("query transformed: %s", refined)
	s.Question = refined
	return s, nil
}

// answerGeneration produces the answer. With evidence present it runs in
// context mode and assembles the citation union first, so a failed
// generation still surfaces its sources. Without evidence it answers
// from model knowledge, degrading to a fixed apology on failure.
func (st *Stages) answerGeneration(ctx context.Context, s State) (State, error) {
	if s.HasEvidence() {
		s.Citations = mergeCitations(s.NodeCitations, s.EdgeCitations, s.WebCitations)

		answer, err := st.Generator.Generate(ctx, s.Question, formatStateContext(s))
		if err != nil {
			st.Logger.Error("answer generation failed: %v", err)
			s.Generation = ""
			return s, nil
		}
		s.Generation = answer
		return s, nil
	}

	st.Logger.Info("generating from internal knowledge")
	s.Citations = nil
	answer, err := st.Generator.GenerateFromKnowledge(ctx, s.Question)
	if err != nil {
		st.Logger.Error("internal answer generation failed: %v", err)
		s.Generation = apologyAnswer
		return s, nil
	}
	s.Generation = answer
	return s, nil
}

// groundingCheck records whether the generation is supported by the same
// context the generator saw. A failed verdict counts against the
// hallucination budget; a grader error passes the check so a flaky
// grader cannot loop the workflow.
func (st *Stages) groundingCheck(ctx context.Context, s State) (State, error) {
	grounded, err := st.GroundingGrader.Grade(ctx, formatStateContext(s), s.Generation)
	if err != nil {
		st.Logger.Warn("grounding check failed, accepting generation: %v", err)
		grounded = true
	}
	s.GenerationGrounded = grounded
	if !grounded {
		s.HallucinationRetryCount++
		st.Logger.Info("generation not grounded, retry %d/%d", s.HallucinationRetryCount, st.MaxHallucinationRetries)
	}
	return s, nil
}

// qualityCheck records whether the generation resolves the question. A
// grader error passes the check.
func (st *Stages) qualityCheck(ctx context.Context, s State) (State, error) {
	useful, err := st.QualityGrader.Grade(ctx, s.Question, s.Generation)
	if err != nil {
		st.Logger.Warn("answer quality check failed, accepting generation: %v", err)
		useful = true
	}
	s.AnswerUseful = useful
	if !useful {
		st.Logger.Info("generation does not address the question")
	}
	return s, nil
}
