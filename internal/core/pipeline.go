// ABOUTME: Pipeline wires selection, embedding, indexing, statistics and summary together
// ABOUTME: Each stage finishes before the next, a missing asset stops before any remote call
package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harper/wosum/internal/embedding"
	"github.com/harper/wosum/internal/eval"
	"github.com/harper/wosum/internal/index"
	"github.com/harper/wosum/internal/ingest"
	"github.com/harper/wosum/internal/llm"
	"github.com/harper/wosum/internal/logging"
	"github.com/harper/wosum/internal/models"
)

// Pipeline runs one summary request over a loaded dataset
type Pipeline struct {
	Embedder   embedding.TextEmbedder
	Index      index.VectorIndex
	Summarizer llm.SummaryService
	Logger     *zap.SugaredLogger

	preloaded bool
}

// Result is the outcome of one pipeline run
type Result struct {
	RunID      string             `json:"run_id" yaml:"run_id"`
	Asset      string             `json:"asset" yaml:"asset"`
	WindowSize int                `json:"window_size" yaml:"window_size"`
	Window     []models.WorkOrder `json:"window" yaml:"window"`
	Stats      models.WindowStats `json:"stats" yaml:"stats"`
	Indexed    int                `json:"indexed" yaml:"indexed"`
	Dimension  int                `json:"dimension,omitempty" yaml:"dimension,omitempty"`
	Prompt     string             `json:"prompt" yaml:"prompt"`
	Summary    string             `json:"summary,omitempty" yaml:"summary,omitempty"`
	Grounding  *eval.Report       `json:"grounding,omitempty" yaml:"grounding,omitempty"`
}

// NewPipeline creates a pipeline using the process logger
func NewPipeline(embedder embedding.TextEmbedder, idx index.VectorIndex, summarizer llm.SummaryService) *Pipeline {
	return &Pipeline{
		Embedder:   embedder,
		Index:      idx,
		Summarizer: summarizer,
		Logger:     logging.L(),
	}
}

// Analyze selects the window for asset and computes its statistics and prompt.
// It makes no remote calls and does not touch the index.
func Analyze(orders []models.WorkOrder, asset string, k int) (*Result, error) {
	window, err := SelectWindow(orders, asset, k)
	if err != nil {
		return nil, err
	}
	stats := Aggregate(window)
	prompt := BuildPrompt(NewPromptContext(asset, k, window, stats))

	return &Result{
		RunID:      uuid.New().String(),
		Asset:      asset,
		WindowSize: k,
		Window:     window,
		Stats:      stats,
		Prompt:     prompt,
	}, nil
}

// Prepare runs every stage except the summary request
func (p *Pipeline) Prepare(ctx context.Context, orders []models.WorkOrder, asset string, k int) (*Result, error) {
	log := p.logger()

	// Selection first so an unknown asset never reaches a remote embedder
	res, err := Analyze(orders, asset, k)
	if err != nil {
		return nil, err
	}
	log = log.With("run_id", res.RunID, "asset", asset)
	log.Debugw("selected window", "matched", len(res.Window), "window_size", k)

	indexed, err := p.ensureIndex(ctx, orders)
	if err != nil {
		return nil, err
	}
	res.Indexed = indexed
	if p.Index != nil {
		res.Dimension = p.Index.Dim()
	}
	log.Debugw("built vector index", "vectors", indexed, "dimension", res.Dimension)
	log.Debugw("aggregated window", "failure_codes", len(res.Stats.Failures), "records", res.Stats.Failures.Total())

	return res, nil
}

// Run prepares the prompt and sends it to the summary service
func (p *Pipeline) Run(ctx context.Context, orders []models.WorkOrder, asset string, k int) (*Result, error) {
	if p.Summarizer == nil {
		return nil, fmt.Errorf("no summary service configured")
	}

	res, err := p.Prepare(ctx, orders, asset, k)
	if err != nil {
		return nil, err
	}

	log := p.logger().With("run_id", res.RunID, "asset", asset)
	log.Infow("requesting summary", "provider", p.Summarizer.Name(), "records", len(res.Window))

	summary, err := p.Summarizer.Complete(ctx, res.Prompt)
	if err != nil {
		return nil, fmt.Errorf("summarizing asset %s: %w", asset, err)
	}
	res.Summary = summary
	log.Debugw("summary received", "chars", len(summary))

	if summary != llm.NoSummary {
		report := eval.CheckSummary(summary, res.Stats, datasetCodes(orders))
		res.Grounding = &report
		if report.Score < 1 {
			log.Warnw("summary grounding check", "score", report.Score, "detail", report.Detail)
		}
	}
	return res, nil
}

// BuildIndex embeds every work order and loads the vectors into the index
// in row order. It returns the number of indexed vectors.
func (p *Pipeline) BuildIndex(ctx context.Context, orders []models.WorkOrder) (int, error) {
	if p.Embedder == nil || p.Index == nil {
		return 0, fmt.Errorf("pipeline has no embedder or index configured")
	}

	texts := make([]string, len(orders))
	for i, wo := range orders {
		texts[i] = orderText(wo)
	}

	vectors, _, err := embedding.EmbedAll(ctx, p.Embedder, texts)
	if err != nil {
		return 0, err
	}
	if err := p.Index.Build(vectors); err != nil {
		return 0, fmt.Errorf("building vector index: %w", err)
	}
	return p.Index.Len(), nil
}

// Preload builds the index for a dataset that stays fixed for the lifetime of
// the pipeline. Later runs over that dataset reuse the index instead of
// embedding every work order again.
func (p *Pipeline) Preload(ctx context.Context, orders []models.WorkOrder) (int, error) {
	n, err := p.BuildIndex(ctx, orders)
	if err != nil {
		return 0, err
	}
	p.preloaded = true
	p.logger().Debugw("preloaded vector index", "vectors", n)
	return n, nil
}

func (p *Pipeline) ensureIndex(ctx context.Context, orders []models.WorkOrder) (int, error) {
	if p.preloaded && p.Index != nil && p.Index.Len() == len(orders) {
		return p.Index.Len(), nil
	}
	return p.BuildIndex(ctx, orders)
}

// Similar returns the k work orders nearest to the query text across all assets
func (p *Pipeline) Similar(ctx context.Context, orders []models.WorkOrder, query string, k int) ([]models.SimilarWorkOrder, error) {
	return p.similar(ctx, orders, query, k, -1)
}

// SimilarTo returns the k work orders nearest to the one numbered wonum, excluding itself
func (p *Pipeline) SimilarTo(ctx context.Context, orders []models.WorkOrder, wonum string, k int) ([]models.SimilarWorkOrder, error) {
	for i, wo := range orders {
		if wo.WONum == wonum {
			return p.similar(ctx, orders, orderText(wo), k, i)
		}
	}
	return nil, fmt.Errorf("work order %q not found", wonum)
}

func (p *Pipeline) similar(ctx context.Context, orders []models.WorkOrder, query string, k, exclude int) ([]models.SimilarWorkOrder, error) {
	if _, err := p.ensureIndex(ctx, orders); err != nil {
		return nil, err
	}

	vectors, _, err := embedding.EmbedAll(ctx, p.Embedder, []string{query})
	if err != nil {
		return nil, err
	}

	want := k
	if exclude >= 0 && k > 0 {
		want = k + 1
	}
	neighbors, err := p.Index.Query(vectors[0], want)
	if err != nil {
		return nil, fmt.Errorf("querying vector index: %w", err)
	}

	out := make([]models.SimilarWorkOrder, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Index == exclude {
			continue
		}
		if len(out) == k {
			break
		}
		out = append(out, models.SimilarWorkOrder{WorkOrder: orders[n.Index], Distance: n.Distance})
	}
	p.logger().Debugw("similarity search", "query_chars", len(query), "k", k, "hits", len(out))
	return out, nil
}

func (p *Pipeline) logger() *zap.SugaredLogger {
	if p.Logger != nil {
		return p.Logger
	}
	return logging.L()
}

func datasetCodes(orders []models.WorkOrder) []string {
	codes := make([]string, 0, len(orders))
	for _, wo := range orders {
		codes = append(codes, wo.FailureCode)
	}
	return codes
}

func orderText(wo models.WorkOrder) string {
	if wo.Text != "" {
		return wo.Text
	}
	return ingest.Normalize(wo)
}
