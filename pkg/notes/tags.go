package notes

import (
	"context"
	"fmt"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

// resolveTag finds the tag for a label or creates it. When a concurrent
// insert wins the race on the unique label, the create fails and the second
// lookup picks up the winner's row.
func resolveTag(ctx context.Context, st store.Store, label string) (*models.Tag, error) {
	tag, err := st.GetTagByLabel(ctx, label)
	if err != nil {
		return nil, err
	}
	if tag != nil {
		return tag, nil
	}

	tag = &models.Tag{Label: label}
	if err := st.CreateTag(ctx, tag); err == nil {
		return tag, nil
	}
	tag, err = st.GetTagByLabel(ctx, label)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, fmt.Errorf("failed to resolve tag %q", label)
	}
	return tag, nil
}

// attachTags associates each label with the note, creating registry entries
// as needed. Labels are attached as given; a repeated label yields a repeated
// association.
func attachTags(ctx context.Context, st store.Store, noteID models.NoteID, labels []string) error {
	for _, label := range labels {
		tag, err := resolveTag(ctx, st, label)
		if err != nil {
			return err
		}
		noteTag := &models.NoteTag{NoteID: noteID, TagID: tag.ID}
		if err := st.CreateNoteTag(ctx, noteTag); err != nil {
			return err
		}
	}
	return nil
}
