package usecase

import (
	"context"

	"github.com/juju/errors"

	"CovidDash/internal/action"
	"CovidDash/internal/domain"
)

// PostComment submits the comment form, clears its text and tags on
// success and reloads the comment list.
func (d *Dashboard) PostComment(ctx context.Context) error {
	act := trigger{name: action.PostComment, control: domain.ControlCommentSubmit, failure: "Failed to post"}
	return d.run(ctx, act, func(ctx context.Context, inv *invocation) error {
		comment := domain.NewComment(
			d.inputs.Value(domain.FieldCommentName),
			d.inputs.Value(domain.FieldCommentText),
			d.inputs.Value(domain.FieldCommentState),
			d.inputs.Value(domain.FieldCommentTags),
		)
		if comment.Comment == "" {
			return errors.NewNotValid(nil, "Comment text is required.")
		}
		inv.announce("Posting comment…")

		inv.enter(PhaseRequesting)
		res := d.api.PostComment(ctx, comment)

		inv.enter(PhaseReconciling)
		if err := res.Err(); err != nil {
			return err
		}
		d.inputs.Reset(domain.FieldCommentText, domain.FieldCommentTags)
		inv.succeed("Comment posted.")

		// The list refresh reports its own failure; the post itself stands.
		_ = d.RefreshComments(ctx)
		return nil
	})
}

// RefreshComments reloads the comment list, filtered by the filter field.
// It is silent unless it fails.
func (d *Dashboard) RefreshComments(ctx context.Context) error {
	act := trigger{name: action.RefreshComments, control: domain.ControlRefreshComments, failure: "Failed to load comments"}
	return d.run(ctx, act, func(ctx context.Context, inv *invocation) error {
		filter := d.inputs.Value(domain.FieldCommentFilter)

		inv.enter(PhaseRequesting)
		res := d.api.Comments(ctx, filter)

		inv.enter(PhaseReconciling)
		items, err := res.Unwrap()
		if err != nil {
			return err
		}
		d.comments.RenderCommentList(domain.ContainerComments, items)
		inv.logger.Debug("comments rendered", "count", len(items))
		return nil
	})
}
