package editor

import (
	"fmt"

	"github.com/meikuraledutech/planflow"
)

// DefaultMaxAttachmentSize caps inline attachments at 5 MB.
const DefaultMaxAttachmentSize = 5 << 20

// FileCapture is the external file-read collaborator's handoff: the
// file's metadata plus a deferred read that yields the data URL. Read
// is only invoked after the size policy has passed, so oversized files
// are rejected before any bytes move.
type FileCapture struct {
	Name string
	Type string
	Size int64
	Read func() (dataURL string, err error)
}

// capture enforces the size policy, reads the file, and mints the
// attachment record. The session lock must NOT be held: Read may block.
func (s *Session) capture(f FileCapture) (planflow.Attachment, error) {
	if s.readOnly {
		return planflow.Attachment{}, planflow.ErrNotEditable
	}
	if f.Size > s.maxAttach {
		return planflow.Attachment{}, fmt.Errorf("planflow: %q is %d bytes: %w", f.Name, f.Size, planflow.ErrAttachmentTooLarge)
	}
	dataURL, err := f.Read()
	if err != nil {
		return planflow.Attachment{}, fmt.Errorf("planflow: read %q: %w", f.Name, err)
	}
	return planflow.Attachment{
		ID:      s.genID("attach"),
		Name:    f.Name,
		Type:    f.Type,
		DataURL: dataURL,
	}, nil
}

// AttachTaskFile stores a captured file on the task itself.
func (s *Session) AttachTaskFile(f FileCapture) (planflow.Attachment, error) {
	att, err := s.capture(f)
	if err != nil {
		return planflow.Attachment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details.Attachments = append(s.details.Attachments, att)
	s.touch()
	return att, nil
}

// RemoveTaskAttachment drops a task-level attachment. Unknown IDs are a
// no-op.
func (s *Session) RemoveTaskAttachment(id string) error {
	return s.setField(func(d *planflow.TaskDetails) {
		kept := d.Attachments[:0:0]
		for _, a := range d.Attachments {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		d.Attachments = kept
	})
}

// AttachSubStepFile stores a captured file on one sub-step.
func (s *Session) AttachSubStepFile(subStepID string, f FileCapture) (planflow.Attachment, error) {
	att, err := s.capture(f)
	if err != nil {
		return planflow.Attachment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.updateSubStepLocked(subStepID, func(step *planflow.SubStep) {
		step.Attachments = append(step.Attachments, att)
	})
	if err != nil {
		return planflow.Attachment{}, err
	}
	return att, nil
}

// RemoveSubStepAttachment drops an attachment from one sub-step.
func (s *Session) RemoveSubStepAttachment(subStepID, attachmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSubStepLocked(subStepID, func(step *planflow.SubStep) {
		kept := step.Attachments[:0:0]
		for _, a := range step.Attachments {
			if a.ID != attachmentID {
				kept = append(kept, a)
			}
		}
		step.Attachments = kept
	})
}
