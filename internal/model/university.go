package model

// University は大学エンティティ。
// 大学名はシステム全体で一意（ストレージの一意制約で担保し、
// バルク処理側で重複競合からリカバリする）。
type University struct {
	id   ID
	name Name
	audit
}

// NewUniversity は新しいIDを採番して大学を生成する。
func NewUniversity(name string, createdBy ID) (*University, error) {
	n, err := NewName(name, "大学名")
	if err != nil {
		return nil, err
	}
	return &University{
		id:    MintID(),
		name:  n,
		audit: newAudit(createdBy),
	}, nil
}

// RestoreUniversity は永続化済みの状態から大学を復元する。
// 新規作成時と同じ検証を行うため、破損したデータも検出できる。
func RestoreUniversity(id, name string, stamp AuditStamp) (*University, error) {
	restoredID, err := NewID(id, "大学ID")
	if err != nil {
		return nil, err
	}
	n, err := NewName(name, "大学名")
	if err != nil {
		return nil, err
	}
	a, err := restoreAudit(stamp)
	if err != nil {
		return nil, err
	}
	return &University{id: restoredID, name: n, audit: a}, nil
}

// ChangeName は大学名を変更する。現在と同じ名称の場合は何もしない。
func (u *University) ChangeName(name string, by ID) error {
	n, err := NewName(name, "大学名")
	if err != nil {
		return err
	}
	if n == u.name {
		return nil
	}
	u.name = n
	u.markAsUpdated(by)
	return nil
}

// Equals は主キーによる同一性比較を行う。
func (u *University) Equals(other *University) bool {
	return other != nil && u.id == other.id
}

// ID は大学IDを返す。
func (u *University) ID() ID { return u.id }

// Name は大学名を返す。
func (u *University) Name() Name { return u.name }

// Rank は大学ランクの等級を表す。
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
)

// NewRank はランク等級を検証して構築する。
func NewRank(value string) (Rank, error) {
	switch Rank(value) {
	case RankS, RankA, RankB, RankC, RankD:
		return Rank(value), nil
	}
	if value == "" {
		return "", NewRequiredFieldError("ランク")
	}
	return "", NewFormatError("ランク", value)
}

// String はランク文字列を返す。
func (r Rank) String() string {
	return string(r)
}

// UniversityRank は大学ごとのランク設定エンティティ。
// 1大学につき0件または1件のみ存在する。
type UniversityRank struct {
	id           ID
	universityID ID
	rank         Rank
	audit
}

// NewUniversityRank は新しいIDを採番して大学ランクを生成する。
func NewUniversityRank(universityID ID, rank string, createdBy ID) (*UniversityRank, error) {
	if universityID.IsZero() {
		return nil, NewRequiredFieldError("大学ID")
	}
	r, err := NewRank(rank)
	if err != nil {
		return nil, err
	}
	return &UniversityRank{
		id:           MintID(),
		universityID: universityID,
		rank:         r,
		audit:        newAudit(createdBy),
	}, nil
}

// RestoreUniversityRank は永続化済みの状態から大学ランクを復元する。
func RestoreUniversityRank(id, universityID, rank string, stamp AuditStamp) (*UniversityRank, error) {
	restoredID, err := NewID(id, "ランクID")
	if err != nil {
		return nil, err
	}
	uid, err := NewID(universityID, "大学ID")
	if err != nil {
		return nil, err
	}
	r, err := NewRank(rank)
	if err != nil {
		return nil, err
	}
	a, err := restoreAudit(stamp)
	if err != nil {
		return nil, err
	}
	return &UniversityRank{id: restoredID, universityID: uid, rank: r, audit: a}, nil
}

// ChangeRank はランク等級を変更する。現在と同じ等級の場合は何もしない。
func (ur *UniversityRank) ChangeRank(rank string, by ID) error {
	r, err := NewRank(rank)
	if err != nil {
		return err
	}
	if r == ur.rank {
		return nil
	}
	ur.rank = r
	ur.markAsUpdated(by)
	return nil
}

// Equals は主キーによる同一性比較を行う。
func (ur *UniversityRank) Equals(other *UniversityRank) bool {
	return other != nil && ur.id == other.id
}

// ID はランクIDを返す。
func (ur *UniversityRank) ID() ID { return ur.id }

// UniversityID は対象の大学IDを返す。
func (ur *UniversityRank) UniversityID() ID { return ur.universityID }

// Rank はランク等級を返す。
func (ur *UniversityRank) Rank() Rank { return ur.rank }
