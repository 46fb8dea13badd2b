package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pbtscan.dev/pkg/pbtscan/internal/domain"
	domainmocks "pbtscan.dev/pkg/pbtscan/internal/domain/mocks"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

func withMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	withFreshConfig(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

func TestListCmd_Defaults(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Paths) == 0 &&
			args.Engine == domain.EngineRegex &&
			args.Extractor.Marker == domain.DefaultMarker &&
			args.FileTimeout == domain.DefaultFileTimeout &&
			!args.Discovery.RequireTestPath
	})).Return(nil)

	cmd.SetArgs([]string{"list"})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_FlagsAndPaths(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Paths) == 2 &&
			args.Paths[0] == m.Path("./tests/...") &&
			args.Paths[1] == m.Path("./src") &&
			args.Parallel == 3 &&
			args.Engine == domain.EngineSyntax &&
			args.Extractor.Marker == "example" &&
			args.Extractor.MatchTimeout == domain.DefaultMatchTimeout
	})).Return(nil)

	cmd.SetArgs([]string{"list", "--parallel", "3", "--engine", "syntax", "-m", "example", "./tests/...", "./src"})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_PropagatesError(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("List", mock.Anything, mock.Anything).Return(errors.New("boom"))

	cmd.SetArgs([]string{"list"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestScanArgsFromConfig_ReadsDurations(t *testing.T) {
	withFreshConfig(t)

	viper.Set(fileTimeoutKey, "5s")
	viper.Set(matchTimeoutKey, "2")

	args := scanArgsFromConfig()
	assert.Equal(t, 5*time.Second, args.FileTimeout)
	assert.Equal(t, 2*time.Second, args.Extractor.MatchTimeout)
	assert.Equal(t, 2*time.Second, args.Discovery.MatchTimeout)
}

func TestListCmd_FlagValuesDoNotLeak(t *testing.T) {
	t.Run("collect with custom flags", func(t *testing.T) {
		mockWorkflow := withMockWorkflow(t)

		cmd := newRootCmd()
		cmd.AddCommand(newCollectCmd())
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		mockWorkflow.On("Collect", mock.Anything, mock.Anything).Return(nil)

		cmd.SetArgs([]string{"collect", testCommitURL, "--file-timeout", "10s", "--include", "tests/**.py"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("list sees defaults", func(t *testing.T) {
		mockWorkflow := withMockWorkflow(t)

		cmd := newRootCmd()
		cmd.AddCommand(newListCmd())
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
			return args.FileTimeout == domain.DefaultFileTimeout &&
				len(args.Discovery.Include) == 1 &&
				args.Discovery.Include[0] == domain.DefaultIncludePattern
		})).Return(nil)

		cmd.SetArgs([]string{"list"})
		require.NoError(t, cmd.Execute())
	})

	assert.Equal(t, []string{domain.DefaultIncludePattern}, viper.GetStringSlice(includeConfigKey))
}
