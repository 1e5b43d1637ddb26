package mockapi

import (
	"context"
	"strings"

	"artikel/auth"
	"artikel/models"
	"artikel/store"
)

// loadUsers reads the user collection, seeding fixtures on first load.
// Roles are renormalized on every load; any repair is persisted so corrupted
// state does not survive.
func (b *Backend) loadUsers() ([]models.StoredUser, error) {
	seed, err := b.seedUsers()
	if err != nil {
		return nil, err
	}
	users, err := store.LoadCollection(b.store, store.KeyUsers, seed)
	if err != nil {
		return nil, err
	}
	changed := false
	for i := range users {
		if normalized := models.NormalizeRole(users[i].Role); normalized != users[i].Role {
			users[i].Role = normalized
			changed = true
		}
	}
	if changed {
		if err := store.SaveCollection(b.store, store.KeyUsers, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (b *Backend) saveUsers(users []models.StoredUser) error {
	return store.SaveCollection(b.store, store.KeyUsers, users)
}

// userByToken resolves a token to its user. The token is valid only if it
// decodes to the id of a user that still exists.
func (b *Backend) userByToken(token string) (models.StoredUser, error) {
	id, err := b.codec.Parse(token)
	if err != nil {
		return models.StoredUser{}, models.ErrUnauthenticated
	}
	users, err := b.loadUsers()
	if err != nil {
		return models.StoredUser{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.StoredUser{}, models.ErrNotFound
}

// Login matches the username exactly (case-sensitive against the stored
// value) and verifies the password against its hash.
func (b *Backend) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	users, err := b.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == req.Username && auth.CheckPassword(req.Password, u.PasswordHash) {
			token, err := b.codec.Issue(u.Profile())
			if err != nil {
				return nil, err
			}
			return &models.AuthResult{Token: token, User: u.Profile()}, nil
		}
	}
	return nil, models.ErrInvalidCredentials
}

// Register creates an account and treats the registration as an implicit
// login. The username-taken check is case-insensitive; the stored username
// keeps its original casing.
func (b *Backend) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	b.usersMu.Lock()
	defer b.usersMu.Unlock()

	users, err := b.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, req.Username) {
			return nil, models.ErrUsernameTaken
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := b.timestamp()
	user := models.StoredUser{
		ID:           nextID(users, func(u models.StoredUser) int { return u.ID }),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.NormalizeRole(req.Role),
		Email:        req.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := b.saveUsers(append(users, user)); err != nil {
		return nil, err
	}
	token, err := b.codec.Issue(user.Profile())
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{Token: token, User: user.Profile()}, nil
}

// Logout has no server-side state to discard; the client destroys the token.
func (b *Backend) Logout(ctx context.Context, token string) error {
	return nil
}

// Profile returns the account the token resolves to.
func (b *Backend) Profile(ctx context.Context, token string) (*models.UserProfile, error) {
	u, err := b.userByToken(token)
	if err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

// UpdateProfile applies a partial update to the token's account. Username
// uniqueness is enforced at registration time only, not here.
func (b *Backend) UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.UserProfile, error) {
	id, err := b.codec.Parse(token)
	if err != nil {
		return nil, models.ErrUnauthenticated
	}

	b.usersMu.Lock()
	defer b.usersMu.Unlock()

	users, err := b.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if patch.Username != nil {
			users[i].Username = *patch.Username
		}
		if patch.Email != nil {
			users[i].Email = *patch.Email
		}
		if patch.Role != nil {
			users[i].Role = models.NormalizeRole(*patch.Role)
		}
		users[i].UpdatedAt = b.timestamp()
		if err := b.saveUsers(users); err != nil {
			return nil, err
		}
		p := users[i].Profile()
		return &p, nil
	}
	return nil, models.ErrNotFound
}
