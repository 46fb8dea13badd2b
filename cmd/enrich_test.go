package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pbtscan.dev/pkg/pbtscan/internal/domain"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

func TestEnrichCmd_Flags(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newEnrichCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Enrich", mock.Anything, mock.MatchedBy(func(args domain.EnrichArgs) bool {
		return args.Token == "secret" &&
			args.RPS == 2.5 &&
			args.Results == m.Path(defaultResultsFile)
	})).Return(nil)

	cmd.SetArgs([]string{"enrich", "--token", "secret", "--rps", "2.5"})
	require.NoError(t, cmd.Execute())
}

func TestEnrichCmd_TokenFromEnvironment(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	t.Setenv("GITHUB_TOKEN", "from-env")

	cmd := newRootCmd()
	cmd.AddCommand(newEnrichCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Enrich", mock.Anything, mock.MatchedBy(func(args domain.EnrichArgs) bool {
		return args.Token == "from-env"
	})).Return(nil)

	cmd.SetArgs([]string{"enrich"})
	require.NoError(t, cmd.Execute())
}
