package domain

import (
	"context"
	"time"

	"pbtscan.dev/pkg/pbtscan/internal/adapter"
	"pbtscan.dev/pkg/pbtscan/internal/controller"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// ScanArgs configures discovery and extraction over a set of files.
type ScanArgs struct {
	Discovery   DiscoveryOptions
	Engine      string
	Extractor   ExtractorOptions
	Parallel    int
	FileTimeout time.Duration
}

// ListArgs contains the arguments for listing tests in local paths.
type ListArgs struct {
	ScanArgs
	Paths []m.Path
}

// CollectArgs contains the arguments for collecting tests from one commit.
type CollectArgs struct {
	ScanArgs
	Reference string
	Output    m.Path
	Cache     m.Path
	Style     string
}

// FilterArgs contains the arguments for building the repository catalog.
type FilterArgs struct {
	Input        m.Path
	Results      m.Path
	Cache        m.Path
	Workers      int
	Timeout      time.Duration
	MinTests     int
	Marker       string
	MatchTimeout time.Duration
}

// EnrichArgs contains the arguments for refreshing catalog metadata.
type EnrichArgs struct {
	Results m.Path
	Token   string
	RPS     float64
}

// TableArgs contains the arguments for rendering the catalog table.
type TableArgs struct {
	Results m.Path
	Output  m.Path
}

// Workflow defines the interface for every pbtscan command.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
	Collect(ctx context.Context, args CollectArgs) error
	Filter(ctx context.Context, args FilterArgs) error
	Enrich(ctx context.Context, args EnrichArgs) error
	Table(ctx context.Context, args TableArgs) error
}

// HostingFactory builds an authenticated hosting client on demand.
type HostingFactory func(token string, rps float64) (adapter.HostingAdapter, error)

type workflow struct {
	adapter.SourceFSAdapter
	adapter.VCSAdapter
	adapter.TypesetterAdapter
	adapter.CatalogStore
	controller.UI

	syntax     adapter.PythonSyntaxAdapter
	newHosting HostingFactory
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	vcsAdapter adapter.VCSAdapter,
	typesetter adapter.TypesetterAdapter,
	store adapter.CatalogStore,
	syntax adapter.PythonSyntaxAdapter,
	newHosting HostingFactory,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter:   fsAdapter,
		VCSAdapter:        vcsAdapter,
		TypesetterAdapter: typesetter,
		CatalogStore:      store,
		UI:                ui,
		syntax:            syntax,
		newHosting:        newHosting,
	}
}
