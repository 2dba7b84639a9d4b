package session

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/vibe-weather/internal/domain/chat"
	"github.com/yanqian/vibe-weather/internal/domain/clock"
	"github.com/yanqian/vibe-weather/internal/domain/dashboard"
	"github.com/yanqian/vibe-weather/internal/domain/effects"
	"github.com/yanqian/vibe-weather/internal/domain/weather"
	apperrors "github.com/yanqian/vibe-weather/pkg/errors"
)

// Service exposes every dashboard gesture.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Snapshot, error)
	Get(ctx context.Context, id string) (Snapshot, error)
	Close(ctx context.Context, id string) error
	Search(ctx context.Context, id, city string) (Snapshot, error)
	Locate(ctx context.Context, id string, coords weather.Coordinates) (Snapshot, error)
	CycleTheme(ctx context.Context, id string) (Snapshot, error)
	ToggleGravity(ctx context.Context, id string) (Snapshot, error)
	SetPanel(ctx context.Context, id string, panel Panel, visible *bool) (Snapshot, error)
	Chat(ctx context.Context, id, text string) (Snapshot, error)
	QuickReply(ctx context.Context, id, kind string) (Snapshot, error)
	Parallax(ctx context.Context, id string, evt effects.PointerEvent) ([]effects.Transform, error)
}

type service struct {
	cfg        Config
	store      Store
	geocoder   weather.Geocoder
	forecaster weather.ForecastFetcher
	renderer   *dashboard.Renderer
	clock      *clock.Formatter
	scheduler  *chat.Scheduler
	logger     *slog.Logger

	locksMu sync.Mutex
	locks   map[string]*sessionLock

	newID func() string
	rngMu sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

// NewService wires up the dashboard session domain.
func NewService(cfg Config, store Store, geocoder weather.Geocoder, forecaster weather.ForecastFetcher, formatter *clock.Formatter, scheduler *chat.Scheduler, logger *slog.Logger) Service {
	return newService(cfg, store, geocoder, forecaster, formatter, scheduler, logger)
}

func newService(cfg Config, store Store, geocoder weather.Geocoder, forecaster weather.ForecastFetcher, formatter *clock.Formatter, scheduler *chat.Scheduler, logger *slog.Logger) *service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 50
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	return &service{
		cfg:        cfg,
		store:      store,
		geocoder:   geocoder,
		forecaster: forecaster,
		renderer:   dashboard.NewRenderer(),
		clock:      formatter,
		scheduler:  scheduler,
		logger:     logger.With("component", "session.service"),
		locks:      make(map[string]*sessionLock),
		newID:      uuid.NewString,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:        time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Snapshot, error) {
	loc := clock.LoadLocation(req.Timezone, s.cfg.Location)
	now := s.now()
	state := State{
		ID:         s.newID(),
		ThemeIndex: 0,
		Status:     StatusIdle,
		Messages:   []chat.Message{},
		Particles:  s.particles(),
		Timezone:   loc.String(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Save(ctx, state, s.cfg.TTL); err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to create session", err)
	}
	s.logger.Info("session created", "session_id", state.ID, "timezone", state.Timezone)

	if city := strings.TrimSpace(s.cfg.DefaultCity); city != "" {
		return s.Search(ctx, state.ID, city)
	}
	return s.snapshot(state), nil
}

func (s *service) Get(ctx context.Context, id string) (Snapshot, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state), nil
}

// Close drops pending replies, then deletes the session once any in-flight
// commit has finished, so nothing can write it back.
func (s *service) Close(ctx context.Context, id string) error {
	dropped := s.scheduler.CancelOwner(id)

	unlock := s.lock(id)
	defer unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodeSessionError, "failed to close session", err)
	}
	s.logger.Info("session closed", "session_id", id, "dropped_replies", dropped)
	return nil
}

// Search geocodes city and loads its forecast. Not-found and provider
// failures are recorded on the session rather than returned.
func (s *service) Search(ctx context.Context, id, city string) (Snapshot, error) {
	city = strings.TrimSpace(city)
	var (
		token uint64
		prior Status
	)
	state, err := s.mutate(ctx, id, func(st *State) error {
		if city == "" {
			return nil
		}
		st.Panels.Search = false
		prior = settledStatus(st)
		token = s.beginFetch(st)
		return nil
	})
	if err != nil || city == "" {
		return s.result(state, err)
	}

	// lookups finish even if the caller goes away
	callCtx := context.WithoutCancel(ctx)
	res, err := s.geocoder.Resolve(callCtx, city)
	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		s.logger.Info("city not found", "session_id", id, "city", city)
		state, err = s.mutate(callCtx, id, func(st *State) error {
			st.Notice = NoticeCityNotFound
			if st.Generation == token {
				st.Status = prior
			}
			return nil
		})
		return s.result(state, err)
	case err != nil:
		s.logger.Error("geocoding failed", "session_id", id, "city", city, "code", apperrors.CodeGeocodeError, "error", err)
		state, err = s.mutate(callCtx, id, func(st *State) error {
			if st.Generation == token {
				st.Status = StatusAPIError
			}
			return nil
		})
		return s.result(state, err)
	}

	if _, err := s.mutate(callCtx, id, func(st *State) error {
		if st.Generation == token {
			st.Place = res.Place
		}
		return nil
	}); err != nil {
		return Snapshot{}, err
	}

	return s.result(s.fetch(callCtx, id, token, prior, res.Coordinates))
}

// Locate loads the forecast for a device position.
func (s *service) Locate(ctx context.Context, id string, coords weather.Coordinates) (Snapshot, error) {
	if coords.Latitude < -90 || coords.Latitude > 90 || coords.Longitude < -180 || coords.Longitude > 180 {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, "coordinates out of range", nil)
	}
	var (
		token uint64
		prior Status
	)
	if _, err := s.mutate(ctx, id, func(st *State) error {
		prior = settledStatus(st)
		token = s.beginFetch(st)
		st.Place = weather.Place{DisplayName: weather.MyLocation}
		return nil
	}); err != nil {
		return Snapshot{}, err
	}
	return s.result(s.fetch(context.WithoutCancel(ctx), id, token, prior, coords))
}

// fetch loads a forecast and commits it only if token is still the
// session's latest fetch; older responses are dropped.
func (s *service) fetch(ctx context.Context, id string, token uint64, prior Status, coords weather.Coordinates) (State, error) {
	forecast, fetchErr := s.forecaster.Fetch(ctx, coords)
	if fetchErr != nil {
		s.logger.Error("forecast fetch failed", "session_id", id, "code", apperrors.CodeForecastError, "error", fetchErr)
	}
	return s.mutate(ctx, id, func(st *State) error {
		if st.Generation != token {
			s.logger.Warn("discarding superseded forecast", "session_id", id, "token", token, "current", st.Generation)
			return nil
		}
		if fetchErr != nil {
			st.Status = prior
			return nil
		}
		st.Forecast = &forecast
		st.Status = StatusReady
		return nil
	})
}

func (s *service) beginFetch(st *State) uint64 {
	st.Generation++
	st.Status = StatusLoading
	st.Notice = ""
	return st.Generation
}

// settledStatus is the status to fall back to when a lookup does not land.
func settledStatus(st *State) Status {
	if st.Status == StatusLoading {
		if st.Forecast != nil {
			return StatusReady
		}
		return StatusIdle
	}
	return st.Status
}

func (s *service) CycleTheme(ctx context.Context, id string) (Snapshot, error) {
	state, err := s.mutate(ctx, id, func(st *State) error {
		st.ThemeIndex = NextTheme(st.ThemeIndex)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state), nil
}

func (s *service) ToggleGravity(ctx context.Context, id string) (Snapshot, error) {
	state, err := s.mutate(ctx, id, func(st *State) error {
		st.AntiGravity = !st.AntiGravity
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state), nil
}

// SetPanel shows or hides a panel; a nil visible flips it.
func (s *service) SetPanel(ctx context.Context, id string, panel Panel, visible *bool) (Snapshot, error) {
	state, err := s.mutate(ctx, id, func(st *State) error {
		var target *bool
		switch panel {
		case PanelSearch:
			target = &st.Panels.Search
		case PanelChat:
			target = &st.Panels.Chat
		default:
			return apperrors.Wrap(apperrors.CodeInvalidInput, "unknown panel "+string(panel), nil)
		}
		if visible == nil {
			*target = !*target
		} else {
			*target = *visible
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state), nil
}

// Chat records the user's message, then waits for the deferred bot reply.
// Blank text is ignored.
func (s *service) Chat(ctx context.Context, id, text string) (Snapshot, error) {
	text = strings.TrimSpace(text)
	var (
		reply string
		delay time.Duration
	)
	state, err := s.mutate(ctx, id, func(st *State) error {
		if text == "" {
			return nil
		}
		s.appendMessage(st, chat.SenderUser, text)
		reply = chat.Respond(text, st.Forecast)
		delay = s.cfg.Chat.DelayFor(st.Forecast)
		return nil
	})
	if err != nil || text == "" {
		return s.result(state, err)
	}

	bgCtx := context.WithoutCancel(ctx)
	task := s.scheduler.Schedule(id, delay, func() {
		if _, err := s.mutate(bgCtx, id, func(st *State) error {
			s.appendMessage(st, chat.SenderBot, reply)
			return nil
		}); err != nil {
			s.logger.Warn("chat reply dropped", "session_id", id, "error", err)
		}
	})

	select {
	case <-task.Done():
	case <-ctx.Done():
		s.scheduler.Cancel(task)
		return Snapshot{}, apperrors.Wrap(apperrors.CodeCanceled, "chat request canceled", ctx.Err())
	}
	if task.Canceled() {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeCanceled, "session closed before reply", nil)
	}
	return s.Get(ctx, id)
}

// QuickReply sends one of the canned shortcut questions.
func (s *service) QuickReply(ctx context.Context, id, kind string) (Snapshot, error) {
	prompt, ok := chat.QuickPrompt(kind)
	if !ok {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown quick reply "+kind, nil)
	}
	return s.Chat(ctx, id, prompt)
}

// Parallax returns layer transforms while anti-gravity is on and none otherwise.
func (s *service) Parallax(ctx context.Context, id string, evt effects.PointerEvent) ([]effects.Transform, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !state.AntiGravity {
		return []effects.Transform{}, nil
	}
	return effects.Parallax(evt), nil
}

func (s *service) appendMessage(st *State, sender chat.Sender, text string) {
	st.Messages = append(st.Messages, chat.Message{Sender: sender, Text: text, SentAt: s.now()})
	if extra := len(st.Messages) - s.cfg.MaxMessages; extra > 0 {
		st.Messages = append([]chat.Message(nil), st.Messages[extra:]...)
	}
}

func (s *service) particles() []effects.Particle {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return effects.Particles(s.rng, s.cfg.ParticleCount)
}

func (s *service) result(st State, err error) (Snapshot, error) {
	if err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(st), nil
}

func (s *service) snapshot(st State) Snapshot {
	loc := clock.LoadLocation(st.Timezone, s.cfg.Location)
	formatter := s.clock.In(loc)

	snap := Snapshot{
		ID:          st.ID,
		Place:       st.Place.DisplayName,
		Clock:       formatter.Format(s.now()),
		Status:      st.Status,
		Notice:      st.Notice,
		Theme:       ThemeAt(st.ThemeIndex),
		AntiGravity: st.AntiGravity,
		Panels:      st.Panels,
		Messages:    st.Messages,
		Particles:   st.Particles,
	}
	if snap.Messages == nil {
		snap.Messages = []chat.Message{}
	}
	if st.Forecast != nil {
		view := s.renderer.Render(*st.Forecast, s.now().In(loc))
		snap.Dashboard = &view
		snap.Description = view.Hero.Description
	}
	switch st.Status {
	case StatusLoading:
		snap.Description = "Loading..."
	case StatusAPIError:
		snap.Description = "API Error"
	}
	if snap.Dashboard != nil {
		snap.Dashboard.Hero.Description = snap.Description
	}
	return snap
}

func (s *service) load(ctx context.Context, id string) (State, error) {
	state, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to load session", err)
	}
	if !ok {
		return State{}, apperrors.Wrap(apperrors.CodeNotFound, "session not found", nil)
	}
	return state, nil
}

// mutate applies fn to the stored state under the session lock and saves it.
func (s *service) mutate(ctx context.Context, id string, fn func(*State) error) (State, error) {
	unlock := s.lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return State{}, err
	}
	if err := fn(&state); err != nil {
		return State{}, err
	}
	state.UpdatedAt = s.now()
	if err := s.store.Save(ctx, state, s.cfg.TTL); err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to save session", err)
	}
	return state, nil
}

// sessionLock is held in the locks map only while someone uses or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (s *service) lock(id string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}
