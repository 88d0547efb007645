package model

import "time"

// EventKind は採用イベントの種別を表す。
type EventKind string

const (
	EventKindBriefing  EventKind = "説明会"
	EventKindInterview EventKind = "面接"
	EventKindIntern    EventKind = "インターン"
)

// NewEventKind はイベント種別を検証して構築する。
func NewEventKind(value string) (EventKind, error) {
	switch EventKind(value) {
	case EventKindBriefing, EventKindInterview, EventKindIntern:
		return EventKind(value), nil
	}
	if value == "" {
		return "", NewRequiredFieldError("イベント種別")
	}
	return "", NewFormatError("イベント種別", value)
}

// String はイベント種別の文字列を返す。
func (k EventKind) String() string {
	return string(k)
}

// Event は採用イベントエンティティ。主催部署に属する。
type Event struct {
	id           ID
	name         Name
	kind         EventKind
	departmentID ID
	heldAt       time.Time
	venue        string
	audit
}

// NewEvent は新しいIDを採番してイベントを生成する。
func NewEvent(name, kind string, departmentID ID, heldAt time.Time, venue string, createdBy ID) (*Event, error) {
	n, err := NewName(name, "イベント名")
	if err != nil {
		return nil, err
	}
	k, err := NewEventKind(kind)
	if err != nil {
		return nil, err
	}
	if departmentID.IsZero() {
		return nil, NewRequiredFieldError("部署ID")
	}
	if heldAt.IsZero() {
		return nil, NewRequiredFieldError("開催日時")
	}
	return &Event{
		id:           MintID(),
		name:         n,
		kind:         k,
		departmentID: departmentID,
		heldAt:       heldAt,
		venue:        venue,
		audit:        newAudit(createdBy),
	}, nil
}

// RestoreEvent は永続化済みの状態からイベントを復元する。
func RestoreEvent(id, name, kind, departmentID string, heldAt time.Time, venue string, stamp AuditStamp) (*Event, error) {
	restoredID, err := NewID(id, "イベントID")
	if err != nil {
		return nil, err
	}
	n, err := NewName(name, "イベント名")
	if err != nil {
		return nil, err
	}
	k, err := NewEventKind(kind)
	if err != nil {
		return nil, err
	}
	did, err := NewID(departmentID, "部署ID")
	if err != nil {
		return nil, err
	}
	if heldAt.IsZero() {
		return nil, NewRequiredFieldError("開催日時")
	}
	a, err := restoreAudit(stamp)
	if err != nil {
		return nil, err
	}
	return &Event{
		id:           restoredID,
		name:         n,
		kind:         k,
		departmentID: did,
		heldAt:       heldAt,
		venue:        venue,
		audit:        a,
	}, nil
}

// ChangeName はイベント名を変更する。現在と同じ名称の場合は何もしない。
func (e *Event) ChangeName(name string, by ID) error {
	n, err := NewName(name, "イベント名")
	if err != nil {
		return err
	}
	if n == e.name {
		return nil
	}
	e.name = n
	e.markAsUpdated(by)
	return nil
}

// Reschedule は開催日時を変更する。現在と同じ日時の場合は何もしない。
func (e *Event) Reschedule(heldAt time.Time, by ID) error {
	if heldAt.IsZero() {
		return NewRequiredFieldError("開催日時")
	}
	if heldAt.Equal(e.heldAt) {
		return nil
	}
	e.heldAt = heldAt
	e.markAsUpdated(by)
	return nil
}

// ChangeVenue は開催場所を変更する。現在と同じ場所の場合は何もしない。
func (e *Event) ChangeVenue(venue string, by ID) error {
	if venue == e.venue {
		return nil
	}
	e.venue = venue
	e.markAsUpdated(by)
	return nil
}

// Equals は主キーによる同一性比較を行う。
func (e *Event) Equals(other *Event) bool {
	return other != nil && e.id == other.id
}

// ID はイベントIDを返す。
func (e *Event) ID() ID { return e.id }

// Name はイベント名を返す。
func (e *Event) Name() Name { return e.name }

// Kind はイベント種別を返す。
func (e *Event) Kind() EventKind { return e.kind }

// DepartmentID は主催部署IDを返す。
func (e *Event) DepartmentID() ID { return e.departmentID }

// HeldAt は開催日時を返す。
func (e *Event) HeldAt() time.Time { return e.heldAt }

// Venue は開催場所を返す。
func (e *Event) Venue() string { return e.venue }
