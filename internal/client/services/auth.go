// Package services contains application services for the lifeboard client.
// This file defines the auth controller: a two-phase startup state machine
// (registry load, then session restore) plus the register / login / verify /
// resend / logout operations the dashboard shell calls.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/client/models"
	"github.com/dmitrijs2005/lifeboard/internal/client/repositories/identities"
	"github.com/dmitrijs2005/lifeboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lifeboard/internal/client/sessions"
	"github.com/dmitrijs2005/lifeboard/internal/client/theme"
	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/google/uuid"
)

// Result is the outcome of an auth operation. Business failures (duplicate
// email, wrong password, bad code) are Results, never errors; Message is
// short and safe to surface verbatim in the UI.
type Result struct {
	Success bool
	Message string
}

// User-facing operation messages.
const (
	MsgAlreadyRegistered = "Email already registered"
	MsgPleaseVerify      = "Please verify your email"
	MsgCodeSent          = "Verification code sent. Please verify your email"
	MsgNotFound          = "Account not found"
	MsgNotVerified       = "Email not verified. Please verify your email"
	MsgWrongPassword     = "Incorrect password"
	MsgLoginOK           = "Login successful"
	MsgNoPendingSignup   = "No pending registration"
	MsgInvalidCode       = "Invalid code"
	MsgVerified          = "Email verified"
	MsgInternal          = "Something went wrong, please try again"
)

// OTPLength is the accepted shape of a one-time code. The mock validates the
// shape only, standing in for a real code check.
const OTPLength = 6

// RegistryState tracks the initial registry load.
type RegistryState int

const (
	RegistryLoading RegistryState = iota
	RegistryReady
)

// SessionState tracks the session-restore decision. It stays Pending until
// the stored pointer is either restored or discarded; while a pointer exists
// but the registry is still empty the question is deliberately left open.
type SessionState int

const (
	SessionPending SessionState = iota
	SessionResolved
)

// AuthController owns the local registry, the session pointer and the theme
// store. Construct one per process with NewAuthController, call Init once,
// and pass it to consumers; it is not an ambient singleton.
//
// Operations are safe for concurrent field access, but the controller does
// not serialize overlapping operations. The UI is expected to disable the
// triggering control while one is in flight.
type AuthController struct {
	db      *sql.DB
	themes  *theme.Store
	logger  logging.Logger
	latency time.Duration

	// seams for tests
	sleep func(ctx context.Context, d time.Duration)
	now   func() time.Time

	mu            sync.Mutex
	codec         *sessions.Codec
	registryState RegistryState
	sessionState  SessionState
	registry      map[string]models.Identity
	current       *models.Profile
	pending       *models.Identity
}

// NewAuthController binds a controller to the local database and theme
// store. latency is the artificial delay applied to every operation,
// standing in for a real network round trip; pass 0 in tests.
func NewAuthController(db *sql.DB, themes *theme.Store, logger logging.Logger, latency time.Duration) *AuthController {
	return &AuthController{
		db:       db,
		themes:   themes,
		logger:   logger,
		latency:  latency,
		sleep:    sleepCtx,
		now:      time.Now,
		registry: make(map[string]models.Identity),
	}
}

func (c *AuthController) identityRepo(db dbx.DBTX) identities.Repository {
	return identities.NewSQLiteRepository(db)
}

func (c *AuthController) metadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Init runs the startup sequence: device secret, theme, registry load, then
// the session-restore decision. The registry load completing strictly
// before the session check is the ordering contract that keeps a valid
// session from being discarded on a plain restart.
//
// Init never fails; every persistence problem degrades to an empty value
// and is logged.
func (c *AuthController) Init(ctx context.Context) {
	secret := c.ensureDeviceSecret(ctx)

	c.themes.Load(ctx)

	loaded, err := c.identityRepo(c.db).GetAll(ctx)
	if err != nil {
		c.logger.Warn(ctx, "failed to load identity registry, starting empty", "error", err)
		loaded = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.codec = sessions.NewCodec(secret)
	c.registry = make(map[string]models.Identity, len(loaded))
	for _, id := range loaded {
		c.registry[id.Email] = id
	}
	c.registryState = RegistryReady

	c.evaluateSessionLocked(ctx)
}

// ensureDeviceSecret loads the per-device session signing secret, creating
// it on first run. On persistence failure a volatile secret is used: the
// process still works, the session just will not survive a restart.
func (c *AuthController) ensureDeviceSecret(ctx context.Context) []byte {
	meta := c.metadataRepo(c.db)

	secret, err := meta.Get(ctx, metadata.KeyDeviceSecret)
	if err != nil {
		c.logger.Warn(ctx, "failed to read device secret", "error", err)
	}
	if len(secret) > 0 {
		return secret
	}

	fresh, err := common.MakeRandHexString(32)
	if err != nil {
		c.logger.Error(ctx, "failed to generate device secret", "error", err)
		return []byte("volatile")
	}
	if err := meta.Set(ctx, metadata.KeyDeviceSecret, []byte(fresh)); err != nil {
		c.logger.Warn(ctx, "failed to persist device secret, session will not survive restart", "error", err)
	}
	return []byte(fresh)
}

// evaluateSessionLocked is the single transition function for the session
// question. It is invoked on registry readiness and again on every registry
// content change until the state reaches SessionResolved. Callers hold c.mu.
//
// Decision table, in order:
//   - registry not ready         → defer (no session is ever discarded here)
//   - already resolved           → nothing to do
//   - no stored pointer          → anonymous
//   - pointer undecodable        → discard, anonymous
//   - resolves to verified id    → restore as authenticated
//   - no match, registry nonempty→ stale: discard, anonymous
//   - no match, registry empty   → hold: leave the question open
func (c *AuthController) evaluateSessionLocked(ctx context.Context) {
	if c.registryState != RegistryReady || c.sessionState == SessionResolved {
		return
	}

	meta := c.metadataRepo(c.db)

	raw, err := meta.Get(ctx, metadata.KeySession)
	if err != nil {
		c.logger.Warn(ctx, "failed to read stored session", "error", err)
		c.sessionState = SessionResolved
		return
	}
	if raw == nil {
		c.sessionState = SessionResolved
		return
	}

	pointer, err := c.codec.Decode(string(raw))
	if err != nil {
		c.logger.Warn(ctx, "discarding undecodable session pointer")
		c.discardSessionLocked(ctx, meta)
		return
	}

	identity, ok := c.registry[pointer.Email]
	switch {
	case ok && identity.Verified:
		profile := models.ProfileOf(identity)
		c.current = &profile
		c.sessionState = SessionResolved
		c.logger.Info(ctx, "session restored", "email", identity.Email)

	case ok && !identity.Verified:
		c.logger.Warn(ctx, "discarding session for unverified identity", "email", pointer.Email)
		c.discardSessionLocked(ctx, meta)

	case len(c.registry) > 0:
		c.logger.Warn(ctx, "discarding stale session", "email", pointer.Email)
		c.discardSessionLocked(ctx, meta)

	default:
		// Registry is empty but a pointer exists: the load may have yielded
		// nothing spuriously. Hold until the registry gains entries.
		c.logger.Debug(ctx, "session restore deferred, registry empty", "email", pointer.Email)
	}
}

func (c *AuthController) discardSessionLocked(ctx context.Context, meta metadata.Repository) {
	if err := meta.Delete(ctx, metadata.KeySession); err != nil {
		c.logger.Warn(ctx, "failed to delete session pointer", "error", err)
	}
	c.current = nil
	c.sessionState = SessionResolved
}

// IsLoading reports whether the startup sequence has reached a terminal
// state. Consumers must not redirect to the sign-in view while true.
func (c *AuthController) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionState != SessionResolved
}

// IsAuthenticated reports whether a current user exists.
func (c *AuthController) IsAuthenticated() bool {
	return c.CurrentUser() != nil
}

// CurrentUser returns a copy of the authenticated profile, or nil.
func (c *AuthController) CurrentUser() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	profile := *c.current
	return &profile
}

// PendingEmail returns the email awaiting verification, or "".
func (c *AuthController) PendingEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return ""
	}
	return c.pending.Email
}

// Register starts a signup. An unverified identity with the same email is
// treated as resuming that signup; a verified one is rejected. The new
// identity is persisted unverified and becomes the pending-verification
// identity.
func (c *AuthController) Register(ctx context.Context, name, email, password string) Result {
	c.sleep(ctx, c.latency)

	email = models.NormalizeEmail(email)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.registry[email]; ok {
		if existing.Verified {
			return Result{Success: false, Message: MsgAlreadyRegistered}
		}
		pending := existing
		c.pending = &pending
		c.deliverOTP(ctx, pending.Email)
		return Result{Success: true, Message: MsgPleaseVerify}
	}

	identity := models.Identity{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		PasswordSecret: password,
	}

	if err := c.identityRepo(c.db).Upsert(ctx, &identity); err != nil {
		c.logger.Error(ctx, "failed to persist registration", "error", err)
		return Result{Success: false, Message: MsgInternal}
	}

	c.registry[email] = identity
	pending := identity
	c.pending = &pending
	c.deliverOTP(ctx, identity.Email)

	// Registry content changed; an open session question may now be decidable.
	c.evaluateSessionLocked(ctx)

	return Result{Success: true, Message: MsgCodeSent}
}

// Login authenticates against the local registry. An unverified match
// becomes the pending-verification identity so the caller can route to the
// verification screen.
func (c *AuthController) Login(ctx context.Context, email, password string) Result {
	c.sleep(ctx, c.latency)

	email = models.NormalizeEmail(email)

	c.mu.Lock()
	defer c.mu.Unlock()

	identity, ok := c.registry[email]
	if !ok {
		return Result{Success: false, Message: MsgNotFound}
	}

	if !identity.Verified {
		pending := identity
		c.pending = &pending
		return Result{Success: false, Message: MsgNotVerified}
	}

	if subtle.ConstantTimeCompare([]byte(identity.PasswordSecret), []byte(password)) == 0 {
		return Result{Success: false, Message: MsgWrongPassword}
	}

	if err := c.writeSessionLocked(ctx, c.metadataRepo(c.db), identity); err != nil {
		c.logger.Error(ctx, "failed to persist session", "error", err)
		return Result{Success: false, Message: MsgInternal}
	}

	profile := models.ProfileOf(identity)
	c.current = &profile
	c.sessionState = SessionResolved

	return Result{Success: true, Message: MsgLoginOK}
}

// VerifyOTP confirms the pending signup. The code is checked for shape
// only (exactly OTPLength characters). On success the verified flag and the
// session pointer are written in one transaction, the pending slot is
// cleared, and the identity becomes the current user.
func (c *AuthController) VerifyOTP(ctx context.Context, code string) Result {
	c.sleep(ctx, c.latency)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return Result{Success: false, Message: MsgNoPendingSignup}
	}
	if len(code) != OTPLength {
		return Result{Success: false, Message: MsgInvalidCode}
	}

	identity := *c.pending
	identity.Verified = true

	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := c.identityRepo(tx).MarkVerified(ctx, identity.Email); err != nil {
			return err
		}
		return c.writeSessionLocked(ctx, c.metadataRepo(tx), identity)
	})
	if err != nil {
		c.logger.Error(ctx, "failed to persist verification", "error", err)
		return Result{Success: false, Message: MsgInternal}
	}

	c.registry[identity.Email] = identity
	profile := models.ProfileOf(identity)
	c.current = &profile
	c.pending = nil
	c.sessionState = SessionResolved

	return Result{Success: true, Message: MsgVerified}
}

// ResendOTP generates a fresh code for the pending signup and simulates its
// delivery. It returns false when nothing is pending. The resend cooldown
// is owned by the UI, not enforced here.
func (c *AuthController) ResendOTP(ctx context.Context) bool {
	c.sleep(ctx, c.latency)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return false
	}
	c.deliverOTP(ctx, c.pending.Email)
	return true
}

// AbandonVerification clears the pending-verification slot, e.g. when the
// user leaves the verification screen.
func (c *AuthController) AbandonVerification() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Logout clears the current user and deletes the session pointer. It is
// idempotent; logging out while logged out is a no-op.
func (c *AuthController) Logout(ctx context.Context) {
	c.sleep(ctx, c.latency)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.metadataRepo(c.db).Delete(ctx, metadata.KeySession); err != nil {
		c.logger.Warn(ctx, "failed to delete session pointer", "error", err)
	}
	c.current = nil
	c.sessionState = SessionResolved
}

// Theme returns the active theme preference.
func (c *AuthController) Theme() models.Theme {
	return c.themes.Current()
}

// IsDarkTheme returns the resolved presentation flag.
func (c *AuthController) IsDarkTheme() bool {
	return c.themes.IsDark()
}

// ToggleTheme advances light → dark → system → light.
func (c *AuthController) ToggleTheme(ctx context.Context) models.Theme {
	next, err := c.themes.Toggle(ctx)
	if err != nil {
		c.logger.Warn(ctx, "failed to persist theme", "error", err)
	}
	return next
}

// SetTheme applies and persists an explicit preference.
func (c *AuthController) SetTheme(ctx context.Context, t models.Theme) error {
	return c.themes.Set(ctx, t)
}

// writeSessionLocked is the only write path for the session pointer.
func (c *AuthController) writeSessionLocked(ctx context.Context, meta metadata.Repository, identity models.Identity) error {
	token, err := c.codec.Encode(models.SessionPointer{
		Email:    identity.Email,
		Verified: identity.Verified,
		IssuedAt: c.now(),
	})
	if err != nil {
		return err
	}
	return meta.Set(ctx, metadata.KeySession, []byte(token))
}

// deliverOTP simulates sending a one-time code: the value is generated,
// logged for local debugging, and discarded. Verification checks shape only.
func (c *AuthController) deliverOTP(ctx context.Context, email string) {
	code, err := common.MakeRandDigits(OTPLength)
	if err != nil {
		c.logger.Warn(ctx, "failed to generate verification code", "error", err)
		return
	}
	c.logger.Debug(ctx, "verification code delivered (simulated)", "email", email, "code", code)
}

// sleepCtx pauses for d, returning early if ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
