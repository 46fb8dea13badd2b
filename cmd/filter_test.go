package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pbtscan.dev/pkg/pbtscan/internal/domain"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

func TestFilterCmd_Defaults(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newFilterCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Filter", mock.Anything, mock.MatchedBy(func(args domain.FilterArgs) bool {
		return args.Input == m.Path(defaultCatalogInput) &&
			args.Results == m.Path(defaultResultsFile) &&
			args.Cache == m.Path(defaultCacheDir) &&
			args.Workers == domain.DefaultCatalogWorkers &&
			args.Timeout == domain.DefaultCatalogTimeout &&
			args.MinTests == domain.DefaultMinTests &&
			args.Marker == domain.DefaultMarker
	})).Return(nil)

	cmd.SetArgs([]string{"filter"})
	require.NoError(t, cmd.Execute())
}

func TestFilterCmd_Flags(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newFilterCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Filter", mock.Anything, mock.MatchedBy(func(args domain.FilterArgs) bool {
		return args.Input == m.Path("deps.json") &&
			args.Results == m.Path("out.json") &&
			args.Workers == 2 &&
			args.Timeout == 90*time.Second &&
			args.MinTests == 5
	})).Return(nil)

	cmd.SetArgs([]string{
		"filter",
		"--input", "deps.json",
		"-r", "out.json",
		"-w", "2",
		"--timeout", "90",
		"--min-tests", "5",
	})
	require.NoError(t, cmd.Execute())
}

func TestFilterCmd_RejectsArguments(t *testing.T) {
	withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newFilterCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"filter", "extra"})
	require.Error(t, cmd.Execute())
}
