package model

// Faculty は学部エンティティ。ちょうど1つの大学に属する。
// (大学ID, 学部名)の組はストレージの一意制約で一意に保たれる。
type Faculty struct {
	id           ID
	universityID ID
	name         Name
	audit
}

// NewFaculty は新しいIDを採番して学部を生成する。
func NewFaculty(universityID ID, name string, createdBy ID) (*Faculty, error) {
	if universityID.IsZero() {
		return nil, NewRequiredFieldError("大学ID")
	}
	n, err := NewName(name, "学部名")
	if err != nil {
		return nil, err
	}
	return &Faculty{
		id:           MintID(),
		universityID: universityID,
		name:         n,
		audit:        newAudit(createdBy),
	}, nil
}

// RestoreFaculty は永続化済みの状態から学部を復元する。
func RestoreFaculty(id, universityID, name string, stamp AuditStamp) (*Faculty, error) {
	restoredID, err := NewID(id, "学部ID")
	if err != nil {
		return nil, err
	}
	uid, err := NewID(universityID, "大学ID")
	if err != nil {
		return nil, err
	}
	n, err := NewName(name, "学部名")
	if err != nil {
		return nil, err
	}
	a, err := restoreAudit(stamp)
	if err != nil {
		return nil, err
	}
	return &Faculty{id: restoredID, universityID: uid, name: n, audit: a}, nil
}

// ChangeName は学部名を変更する。現在と同じ名称の場合は何もしない。
func (f *Faculty) ChangeName(name string, by ID) error {
	n, err := NewName(name, "学部名")
	if err != nil {
		return err
	}
	if n == f.name {
		return nil
	}
	f.name = n
	f.markAsUpdated(by)
	return nil
}

// Equals は主キーによる同一性比較を行う。
func (f *Faculty) Equals(other *Faculty) bool {
	return other != nil && f.id == other.id
}

// ID は学部IDを返す。
func (f *Faculty) ID() ID { return f.id }

// UniversityID は所属する大学IDを返す。
func (f *Faculty) UniversityID() ID { return f.universityID }

// Name は学部名を返す。
func (f *Faculty) Name() Name { return f.name }

// DeviationValue は学部の偏差値エンティティ。
// 1学部につき最大1件（ストレージのfaculty_id一意制約で担保）。
type DeviationValue struct {
	id        ID
	facultyID ID
	score     DeviationScore
	audit
}

// NewDeviationValue は新しいIDを採番して偏差値を生成する。
func NewDeviationValue(facultyID ID, score float64, createdBy ID) (*DeviationValue, error) {
	if facultyID.IsZero() {
		return nil, NewRequiredFieldError("学部ID")
	}
	s, err := NewDeviationScore(score)
	if err != nil {
		return nil, err
	}
	return &DeviationValue{
		id:        MintID(),
		facultyID: facultyID,
		score:     s,
		audit:     newAudit(createdBy),
	}, nil
}

// RestoreDeviationValue は永続化済みの状態から偏差値を復元する。
func RestoreDeviationValue(id, facultyID string, score float64, stamp AuditStamp) (*DeviationValue, error) {
	restoredID, err := NewID(id, "偏差値ID")
	if err != nil {
		return nil, err
	}
	fid, err := NewID(facultyID, "学部ID")
	if err != nil {
		return nil, err
	}
	s, err := NewDeviationScore(score)
	if err != nil {
		return nil, err
	}
	a, err := restoreAudit(stamp)
	if err != nil {
		return nil, err
	}
	return &DeviationValue{id: restoredID, facultyID: fid, score: s, audit: a}, nil
}

// ChangeScore は偏差値を変更する。現在と同じ値の場合は何もしない。
func (d *DeviationValue) ChangeScore(score float64, by ID) error {
	s, err := NewDeviationScore(score)
	if err != nil {
		return err
	}
	if s == d.score {
		return nil
	}
	d.score = s
	d.markAsUpdated(by)
	return nil
}

// Equals は主キーによる同一性比較を行う。
func (d *DeviationValue) Equals(other *DeviationValue) bool {
	return other != nil && d.id == other.id
}

// ID は偏差値IDを返す。
func (d *DeviationValue) ID() ID { return d.id }

// FacultyID は対象の学部IDを返す。
func (d *DeviationValue) FacultyID() ID { return d.facultyID }

// Score は偏差値を返す。
func (d *DeviationValue) Score() DeviationScore { return d.score }
