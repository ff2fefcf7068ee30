package services

import "git.solsynth.dev/hypernet/blogicum/pkg/internal/models"

// Decision is the outcome of a permission check. A denied check never fails
// the request, it sends the actor somewhere else instead.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func RedirectTo(target string) Decision {
	return Decision{Allowed: false, RedirectTo: target}
}

func EnsureAuthenticated(user *models.Account, signIn string) Decision {
	if user == nil || !user.IsActive {
		return RedirectTo(signIn)
	}
	return Allow()
}

func EnsureOwner(user *models.Account, authorId uint, fallback string) Decision {
	if user == nil || user.ID != authorId {
		return RedirectTo(fallback)
	}
	return Allow()
}
