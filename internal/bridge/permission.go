package bridge

import (
	"context"

	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
	pkgmodel "gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

// CheckPermission reports whether both the read and the write permission are
// granted. It never returns pkgmodel.Undetermined.
func (b *Bridge) CheckPermission(ctx context.Context) (pkgmodel.AuthorizationStatus, error) {
	for _, p := range permissions {
		status, err := b.perms.Check(ctx, p)
		if err != nil {
			return "", err
		}
		if status != model.PermissionGranted {
			return pkgmodel.Denied, nil
		}
	}
	return pkgmodel.Authorized, nil
}

// RequestPermission asks for the read and the write permission at once.
func (b *Bridge) RequestPermission(ctx context.Context) (pkgmodel.AuthorizationStatus, error) {
	results, err := b.perms.Request(ctx, permissions)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return pkgmodel.Denied, nil
	}
	for _, status := range results {
		if status != model.PermissionGranted {
			b.logger.Info().Msg("contacts permission request denied")
			return pkgmodel.Denied, nil
		}
	}
	return pkgmodel.Authorized, nil
}
