package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"phototools.dev/pkg/phototools/internal/domain"
	domainmocks "phototools.dev/pkg/phototools/internal/domain/mocks"
	m "phototools.dev/pkg/phototools/internal/model"
)

func TestListCmd_PassesConfig(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return args.Dir == m.Path("./shoot") &&
			args.Config.Subject() == m.ClassRaw &&
			args.Config.RawExt() == "RAF"
	})).Return(nil)

	cmd.SetArgs([]string{"list", "RAW", "--path", "./shoot"})
	require.NoError(t, cmd.Execute())

	mockWorkflow.AssertExpectations(t)
}

func TestListCmd_PropagatesWorkflowError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	listErr := errors.New("boom")
	mockWorkflow.On("List", mock.Anything, mock.Anything).Return(listErr)

	cmd.SetArgs([]string{"list", "IMG"})
	require.ErrorIs(t, cmd.Execute(), listErr)
}

func TestListCmd_RequiresMode(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"list"})
	require.Error(t, cmd.Execute())
}
