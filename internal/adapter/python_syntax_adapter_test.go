package adapter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeSitterPythonAdapter_DecoratedFunctions(t *testing.T) {
	src := `import hypothesis


@pytest.fixture
def client():
    return 1


class TestFoo:
    @settings(max_examples=5)
    @hypothesis.given(st.integers())
    def test_x(self, n):
        assert n == n
`

	functions, err := NewTreeSitterPythonAdapter().DecoratedFunctions(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, functions, 2)

	fixture := functions[0]
	assert.Equal(t, "client", fixture.Name)
	assert.Empty(t, fixture.Scope)
	assert.Equal(t, 3, fixture.StartRow)
	assert.Equal(t, 4, fixture.DefRow)

	test := functions[1]
	assert.Equal(t, "test_x", test.Name)
	assert.Equal(t, "TestFoo", test.Scope)
	assert.Equal(t, 9, test.StartRow)
	assert.Equal(t, 11, test.DefRow)
	assert.Equal(t, 12, test.BodyStartRow)
	assert.Equal(t, 12, test.EndRow)

	decorators := make([]string, 0, len(test.Decorators))
	for _, decorator := range test.Decorators {
		decorators = append(decorators, strings.TrimSpace(decorator))
	}

	assert.Equal(t, []string{"@settings(max_examples=5)", "@hypothesis.given(st.integers())"}, decorators)
}

func TestTreeSitterPythonAdapter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTreeSitterPythonAdapter().DecoratedFunctions(ctx, []byte("x = 1\n"))
	require.ErrorIs(t, err, context.Canceled)
}
