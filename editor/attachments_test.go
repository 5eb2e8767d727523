package editor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/planflow"
	"github.com/meikuraledutech/planflow/editor"
)

func TestAttachTaskFile(t *testing.T) {
	s := newSession(t, planflow.TaskDetails{}, editor.Options{})

	att, err := s.AttachTaskFile(editor.FileCapture{
		Name: "brief.pdf",
		Type: "application/pdf",
		Size: 1024,
		Read: func() (string, error) { return "data:application/pdf;base64,AAAA", nil },
	})
	require.NoError(t, err)
	assert.Equal(t, "brief.pdf", att.Name)
	assert.NotEmpty(t, att.ID)

	d := s.Details()
	require.Len(t, d.Attachments, 1)
	assert.Equal(t, "data:application/pdf;base64,AAAA", d.Attachments[0].DataURL)

	require.NoError(t, s.RemoveTaskAttachment(att.ID))
	assert.Empty(t, s.Details().Attachments)
}

func TestOversizedFileRejectedBeforeRead(t *testing.T) {
	s := newSession(t, planflow.TaskDetails{}, editor.Options{})

	read := false
	_, err := s.AttachTaskFile(editor.FileCapture{
		Name: "huge.bin",
		Size: editor.DefaultMaxAttachmentSize + 1,
		Read: func() (string, error) { read = true; return "", nil },
	})

	require.ErrorIs(t, err, planflow.ErrAttachmentTooLarge)
	assert.False(t, read, "oversized file must be rejected before any bytes are read")
	assert.Empty(t, s.Details().Attachments)
}

func TestAttachmentSizeLimitConfigurable(t *testing.T) {
	s := newSession(t, planflow.TaskDetails{}, editor.Options{
		MaxAttachmentSize: 100,
	})

	_, err := s.AttachTaskFile(editor.FileCapture{
		Name: "small-but-over.txt",
		Size: 101,
		Read: func() (string, error) { return "data:text/plain,x", nil },
	})
	assert.ErrorIs(t, err, planflow.ErrAttachmentTooLarge)

	_, err = s.AttachTaskFile(editor.FileCapture{
		Name: "fits.txt",
		Size: 100,
		Read: func() (string, error) { return "data:text/plain,x", nil },
	})
	assert.NoError(t, err)
}

func TestReadFailureAddsNothing(t *testing.T) {
	s := newSession(t, planflow.TaskDetails{}, editor.Options{})

	readErr := errors.New("device unplugged")
	_, err := s.AttachTaskFile(editor.FileCapture{
		Name: "photo.jpg",
		Size: 2048,
		Read: func() (string, error) { return "", readErr },
	})

	require.ErrorIs(t, err, readErr)
	assert.Empty(t, s.Details().Attachments)
}

func TestAttachSubStepFile(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	att, err := s.AttachSubStepFile("a", editor.FileCapture{
		Name: "mockup.png",
		Type: "image/png",
		Size: 4096,
		Read: func() (string, error) { return "data:image/png;base64,BBBB", nil },
	})
	require.NoError(t, err)

	a, _ := s.Details().SubSteps.Find("a")
	require.Len(t, a.Attachments, 1)
	assert.Equal(t, att.ID, a.Attachments[0].ID)

	require.NoError(t, s.RemoveSubStepAttachment("a", att.ID))
	a, _ = s.Details().SubSteps.Find("a")
	assert.Empty(t, a.Attachments)
}

func TestAttachSubStepFileUnknownSubStep(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	_, err := s.AttachSubStepFile("nope", editor.FileCapture{
		Name: "x.txt",
		Size: 1,
		Read: func() (string, error) { return "data:text/plain,x", nil },
	})
	assert.ErrorIs(t, err, planflow.ErrSubStepNotFound)
}

func TestReadOnlySessionRejectsAttachments(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{ReadOnly: true})

	_, err := s.AttachTaskFile(editor.FileCapture{
		Name: "x.txt",
		Size: 1,
		Read: func() (string, error) { return "", nil },
	})
	assert.ErrorIs(t, err, planflow.ErrNotEditable)
}
