package huddle

import (
	"context"
)

// DirectoryResolver finds the privileged stakeholder auto-invited into every
// session channel. It has no side effects.
type DirectoryResolver struct {
	directory MemberDirectory
}

func NewDirectoryResolver(directory MemberDirectory) *DirectoryResolver {
	return &DirectoryResolver{directory: directory}
}

// FindPrivilegedStakeholder returns the first owner, else the first admin.
// A failed lookup is reported as "none"; it only shrinks the invite set.
func (d *DirectoryResolver) FindPrivilegedStakeholder(ctx context.Context) (string, bool) {
	if d == nil || d.directory == nil {
		return "", false
	}

	members, err := d.directory.ListMembers(ctx)
	if err != nil {
		log.WithError(err).Warn("workspace member lookup failed")
		return "", false
	}

	adminID := ""
	for _, m := range members {
		if m.Deleted || m.IsBot {
			continue
		}
		if m.IsOwner {
			log.WithField("user_id", m.ID).Debug("workspace owner found")
			return m.ID, true
		}
		if m.IsAdmin && adminID == "" {
			adminID = m.ID
		}
	}

	if adminID != "" {
		log.WithField("user_id", adminID).Debug("workspace admin found")
		return adminID, true
	}

	log.Warn("no workspace owner or admin found")
	return "", false
}
