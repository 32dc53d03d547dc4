package engine

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAutoApprover_GrantsAfterWait(t *testing.T) {
	a := NewAutoApprover(NewWaiter(time.Millisecond, time.Millisecond), nil, discardLogger())

	got, err := a.Approve(context.Background(), Item{Title: "Movie A (2020)"}, Subtitle{})
	require.NoError(t, err)
	assert.Equal(t, ApprovalGranted, got)
}

func TestAutoApprover_InterruptCancels(t *testing.T) {
	interrupts := make(chan os.Signal, 1)
	interrupts <- os.Interrupt
	a := NewAutoApprover(NewWaiter(time.Hour, time.Hour), interrupts, discardLogger())

	got, err := a.Approve(context.Background(), Item{Title: "Movie A (2020)"}, Subtitle{})
	require.NoError(t, err)
	assert.Equal(t, ApprovalCancelled, got)
}

func TestPromptApprover_Answers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Approval
	}{
		{name: "explicit yes", input: "y\n", want: ApprovalGranted},
		{name: "empty defaults to yes", input: "\n", want: ApprovalGranted},
		{name: "explicit no", input: "n\n", want: ApprovalDeclined},
		{name: "uppercase no", input: "N\n", want: ApprovalDeclined},
		{name: "garbage defaults to yes", input: "maybe\n", want: ApprovalGranted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := NewPromptApprover(strings.NewReader(tt.input), &out)

			got, err := p.Approve(context.Background(), Item{Title: "Movie A (2020)"}, Subtitle{Path: "/srv/movie.srt"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Movie A (2020)")
		})
	}
}

func TestPromptApprover_ReadErrorDeclines(t *testing.T) {
	var out strings.Builder
	p := NewPromptApprover(strings.NewReader(""), &out)

	got, err := p.Approve(context.Background(), Item{Title: "Movie A (2020)"}, Subtitle{})
	require.Error(t, err)
	assert.Equal(t, ApprovalDeclined, got)
}
