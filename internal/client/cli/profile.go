package cli

import (
	"context"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
)

// UpdateProfile sends patch. An empty patch is filled in interactively,
// field by field, keeping whatever the user leaves blank.
func (a *App) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	if err := a.requireUser(); err != nil {
		return err
	}

	if patch.IsEmpty() {
		var err error
		if patch, err = a.promptPatch(*a.store.User()); err != nil {
			return err
		}
	}

	if err := a.check(a.store.UpdateUser(ctx, patch)); err != nil {
		return err
	}
	a.out.user(*a.store.User())
	return nil
}

func (a *App) promptPatch(u models.User) (models.UserPatch, error) {
	var patch models.UserPatch
	fields := []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"Name", u.Name, &patch.Name},
		{"Email", u.Email, &patch.Email},
		{"Phone number", u.PhoneNumber, &patch.PhoneNumber},
	}
	for _, f := range fields {
		v, ok, err := GetOptionalText(a.reader, f.prompt, f.current, a.out.w)
		if err != nil {
			return patch, err
		}
		if ok {
			*f.dst = models.Ptr(v)
		}
	}
	return patch, nil
}

// Avatar uploads the image at path (prompted when empty) and points the
// profile at it.
func (a *App) Avatar(ctx context.Context, path string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	if !a.config.Avatar.Enabled() {
		return a.fail("Avatar uploads are not configured")
	}

	path, err := a.promptIfEmpty(path, "Path to image")
	if err != nil {
		return err
	}

	uploader, err := newUploader(ctx, a.config.Avatar)
	if err != nil {
		a.logger.Error(ctx, "avatar storage init failed", "error", err)
		return a.fail("Avatar storage is unavailable")
	}

	url, err := uploader.Upload(ctx, a.store.User().ID, path)
	if err != nil {
		a.logger.Error(ctx, "avatar upload failed", "error", err)
		return a.fail("Could not upload avatar: " + err.Error())
	}

	return a.UpdateProfile(ctx, models.UserPatch{Avatar: models.Ptr(url)})
}
