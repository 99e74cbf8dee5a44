package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"eventadmission/internal/domain"
)

const eventSelect = `
	SELECT e.id, e.initiator_id, e.state, e.participant_limit, e.request_moderation, e.paid,
		e.title, e.annotation, e.description, e.event_date, e.created_on, e.published_on, e.views,
		c.id, c.name, l.id, l.lat, l.lon
	FROM events e
	JOIN categories c ON c.id = e.category_id
	JOIN locations l ON l.id = e.location_id`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{Category: &domain.Category{}, Location: &domain.Location{}}
	var publishedOn sql.NullTime
	err := s.Scan(
		&e.ID, &e.InitiatorID, &e.State, &e.ParticipantLimit, &e.RequestModeration, &e.Paid,
		&e.Title, &e.Annotation, &e.Description, &e.EventDate, &e.CreatedOn, &publishedOn, &e.Views,
		&e.Category.ID, &e.Category.Name, &e.Location.ID, &e.Location.Lat, &e.Location.Lon,
	)
	if err != nil {
		return nil, err
	}
	if publishedOn.Valid {
		t := publishedOn.Time
		e.PublishedOn = &t
	}
	return e, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.Category == nil || e.Location == nil {
		return errors.New("create event: category and location are required")
	}
	query := `
		INSERT INTO events (initiator_id, category_id, location_id, state, participant_limit,
			request_moderation, paid, title, annotation, description, event_date, created_on, published_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.InitiatorID, e.Category.ID, e.Location.ID, e.State, e.ParticipantLimit,
		e.RequestModeration, e.Paid, e.Title, e.Annotation, e.Description, e.EventDate, e.CreatedOn, nullTime(e.PublishedOn),
	).Scan(&e.ID)
	return mapError(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.getOne(ctx, eventSelect+` WHERE e.id = $1`, id)
}

// GetForUpdate locks only the events row; category and location rows stay unlocked.
func (r *eventRepository) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.getOne(ctx, eventSelect+` WHERE e.id = $1 FOR UPDATE OF e`, id)
}

func (r *eventRepository) getOne(ctx context.Context, query, id string) (*domain.Event, error) {
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	if e.Category == nil || e.Location == nil {
		return errors.New("update event: category and location are required")
	}
	query := `
		UPDATE events
		SET category_id = $2, location_id = $3, state = $4, participant_limit = $5,
			request_moderation = $6, paid = $7, title = $8, annotation = $9, description = $10,
			event_date = $11, published_on = $12
		WHERE id = $1
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		e.ID, e.Category.ID, e.Location.ID, e.State, e.ParticipantLimit,
		e.RequestModeration, e.Paid, e.Title, e.Annotation, e.Description,
		e.EventDate, nullTime(e.PublishedOn),
	)
	if err != nil {
		return mapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) IncrementViews(ctx context.Context, id string) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, `UPDATE events SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment views rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListByInitiator(ctx context.Context, initiatorID string, page domain.PageRequest) ([]*domain.Event, error) {
	var b filterBuilder
	b.add("e.initiator_id = $%d", initiatorID)
	return r.list(ctx, &b, "e.created_on DESC, e.id", page)
}

func (r *eventRepository) AdminSearch(ctx context.Context, filter domain.AdminEventFilter, page domain.PageRequest) ([]*domain.Event, error) {
	var b filterBuilder
	if len(filter.InitiatorIDs) > 0 {
		b.add("e.initiator_id::text = ANY($%d)", pq.Array(filter.InitiatorIDs))
	}
	if len(filter.States) > 0 {
		states := make([]string, 0, len(filter.States))
		for _, s := range filter.States {
			states = append(states, string(s))
		}
		b.add("e.state = ANY($%d)", pq.Array(states))
	}
	if len(filter.CategoryIDs) > 0 {
		b.add("e.category_id::text = ANY($%d)", pq.Array(filter.CategoryIDs))
	}
	b.addRange(filter.RangeStart, filter.RangeEnd)
	return r.list(ctx, &b, "e.created_on, e.id", page)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *eventRepository) PublicSearch(ctx context.Context, filter domain.PublicEventFilter, page domain.PageRequest) ([]*domain.Event, error) {
	var b filterBuilder
	b.add("e.state = $%d", string(domain.EventStatePublished))
	if text := strings.TrimSpace(filter.Text); text != "" {
		b.add("(e.annotation ILIKE $%[1]d OR e.description ILIKE $%[1]d)", "%"+likeEscaper.Replace(text)+"%")
	}
	if len(filter.CategoryIDs) > 0 {
		b.add("e.category_id::text = ANY($%d)", pq.Array(filter.CategoryIDs))
	}
	if filter.Paid != nil {
		b.add("e.paid = $%d", *filter.Paid)
	}
	b.addRange(filter.RangeStart, filter.RangeEnd)
	if filter.OnlyAvailable {
		b.conds = append(b.conds, `(e.participant_limit = 0 OR e.participant_limit > (
			SELECT COUNT(*) FROM participation_requests pr
			WHERE pr.event_id = e.id AND pr.status = 'CONFIRMED'))`)
	}

	order := "e.event_date, e.id"
	if filter.Sort == domain.SortViews {
		order = "e.views DESC, e.id"
	}
	return r.list(ctx, &b, order, page)
}

func (r *eventRepository) list(ctx context.Context, b *filterBuilder, order string, page domain.PageRequest) ([]*domain.Event, error) {
	args := append(b.args, page.Offset(), page.Limit())
	query := fmt.Sprintf("%s %s ORDER BY %s OFFSET $%d LIMIT $%d",
		eventSelect, b.where(), order, len(args)-1, len(args))

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// filterBuilder collects AND-ed conditions with positional arguments. Each
// condition is a format string whose verb receives the argument's position.
type filterBuilder struct {
	conds []string
	args  []any
}

func (b *filterBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(cond, len(b.args)))
}

func (b *filterBuilder) addRange(start, end *time.Time) {
	if start != nil {
		b.add("e.event_date >= $%d", *start)
	}
	if end != nil {
		b.add("e.event_date <= $%d", *end)
	}
}

func (b *filterBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}
