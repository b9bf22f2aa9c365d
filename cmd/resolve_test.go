package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"depmap.dev/pkg/depmap/internal/domain"
	m "depmap.dev/pkg/depmap/internal/model"
)

func TestResolveCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newResolveCmd())

	mockWorkflow.On("Resolve", mock.Anything, mock.MatchedBy(func(args domain.ResolveArgs) bool {
		return args.Reference == m.DependencyReference{MainFile: "/opt/pkg/sub/mod.py", Reference: "/build/tmp/sub/helper.pxi"} &&
			len(args.SearchPaths) == 0 &&
			len(args.IncludeExtensions) == 1 && args.IncludeExtensions[0] == ".pxi" &&
			!args.Strict
	})).Return(nil)

	cmd.SetArgs([]string{"resolve", "/opt/pkg/sub/mod.py", "/build/tmp/sub/helper.pxi"})
	require.NoError(t, cmd.Execute())
}

func TestResolveCmd_FlagsArePassedThrough(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newResolveCmd())

	mockWorkflow.On("Resolve", mock.Anything, mock.MatchedBy(func(args domain.ResolveArgs) bool {
		return args.Reference.RelativeHint &&
			args.Strict &&
			len(args.SearchPaths) == 2 &&
			args.SearchPaths[0] == m.Path("/usr/lib/foo") &&
			args.SearchPaths[1] == m.Path("/usr/local/lib/foo") &&
			len(args.IncludeExtensions) == 1 && args.IncludeExtensions[0] == ".pxd"
	})).Return(nil)

	cmd.SetArgs([]string{
		"resolve", "mod.pyx", "helper.pxd",
		"--relative", "--strict",
		"-I", "/usr/lib/foo", "--search-path", "/usr/local/lib/foo",
		"--include-ext", ".pxd",
	})
	require.NoError(t, cmd.Execute())
}

func TestResolveCmd_PropagatesWorkflowError(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newResolveCmd())

	mockWorkflow.On("Resolve", mock.Anything, mock.Anything).Return(domain.ErrUnresolved)

	cmd.SetArgs([]string{"resolve", "mod.pyx", "missing.pyx", "--strict"})
	require.ErrorIs(t, cmd.Execute(), domain.ErrUnresolved)
}

func TestResolveCmd_RequiresTwoArgs(t *testing.T) {
	cmd, _ := newTestRootCmd(t, newResolveCmd())

	cmd.SetArgs([]string{"resolve", "mod.pyx"})
	require.Error(t, cmd.Execute())
}
