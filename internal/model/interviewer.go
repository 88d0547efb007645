package model

// InterviewerCategory は面接官の区分を表す。
type InterviewerCategory string

const (
	// CategoryFront は人事担当（フロント）を示す。
	CategoryFront InterviewerCategory = "フロント"
	// CategoryFieldStaff は現場社員を示す。
	CategoryFieldStaff InterviewerCategory = "現場社員"
)

// NewInterviewerCategory は面接官区分を検証して構築する。
func NewInterviewerCategory(value string) (InterviewerCategory, error) {
	switch InterviewerCategory(value) {
	case CategoryFront, CategoryFieldStaff:
		return InterviewerCategory(value), nil
	}
	if value == "" {
		return "", NewRequiredFieldError("面接官区分")
	}
	return "", NewFormatError("面接官区分", value)
}

// String は面接官区分の文字列を返す。
func (c InterviewerCategory) String() string {
	return string(c)
}

// Interviewer は面接官エンティティ。
// ユーザーと1対1で対応し、ユーザーIDを主キーとして共有する。
// 出身大学・学部は任意項目で、未設定の場合はゼロ値のIDを保持する。
type Interviewer struct {
	userID       ID
	category     InterviewerCategory
	universityID ID
	facultyID    ID
	audit
}

// NewInterviewer は面接官を生成する。userIDは対応するユーザーのID。
// universityID/facultyIDは空文字列の場合未設定として扱う。
func NewInterviewer(userID ID, category, universityID, facultyID string, createdBy ID) (*Interviewer, error) {
	if userID.IsZero() {
		return nil, NewRequiredFieldError("ユーザーID")
	}
	c, err := NewInterviewerCategory(category)
	if err != nil {
		return nil, err
	}
	uid, fid, err := parseEducationalBackground(universityID, facultyID)
	if err != nil {
		return nil, err
	}
	return &Interviewer{
		userID:       userID,
		category:     c,
		universityID: uid,
		facultyID:    fid,
		audit:        newAudit(createdBy),
	}, nil
}

// RestoreInterviewer は永続化済みの状態から面接官を復元する。
func RestoreInterviewer(userID, category, universityID, facultyID string, stamp AuditStamp) (*Interviewer, error) {
	uid, err := NewID(userID, "ユーザーID")
	if err != nil {
		return nil, err
	}
	c, err := NewInterviewerCategory(category)
	if err != nil {
		return nil, err
	}
	univID, facID, err := parseEducationalBackground(universityID, facultyID)
	if err != nil {
		return nil, err
	}
	a, err := restoreAudit(stamp)
	if err != nil {
		return nil, err
	}
	return &Interviewer{
		userID:       uid,
		category:     c,
		universityID: univID,
		facultyID:    facID,
		audit:        a,
	}, nil
}

// parseEducationalBackground は任意項目の出身大学・学部IDを検証する。
// いずれも空文字列は未設定として許容する。
func parseEducationalBackground(universityID, facultyID string) (ID, ID, error) {
	var uid, fid ID
	if universityID != "" {
		parsed, err := NewID(universityID, "大学ID")
		if err != nil {
			return "", "", err
		}
		uid = parsed
	}
	if facultyID != "" {
		parsed, err := NewID(facultyID, "学部ID")
		if err != nil {
			return "", "", err
		}
		fid = parsed
	}
	return uid, fid, nil
}

// ChangeCategory は面接官区分を変更する。現在と同じ区分の場合は何もしない。
func (i *Interviewer) ChangeCategory(category string, by ID) error {
	c, err := NewInterviewerCategory(category)
	if err != nil {
		return err
	}
	if c == i.category {
		return nil
	}
	i.category = c
	i.markAsUpdated(by)
	return nil
}

// ChangeEducationalBackground は出身大学・学部を変更する。
// 両方とも現在と同じ場合は何もしない。空文字列は未設定への変更を意味する。
func (i *Interviewer) ChangeEducationalBackground(universityID, facultyID string, by ID) error {
	uid, fid, err := parseEducationalBackground(universityID, facultyID)
	if err != nil {
		return err
	}
	if uid == i.universityID && fid == i.facultyID {
		return nil
	}
	i.universityID = uid
	i.facultyID = fid
	i.markAsUpdated(by)
	return nil
}

// Equals は主キー（ユーザーID）による同一性比較を行う。
func (i *Interviewer) Equals(other *Interviewer) bool {
	return other != nil && i.userID == other.userID
}

// UserID は主キーであるユーザーIDを返す。
func (i *Interviewer) UserID() ID { return i.userID }

// Category は面接官区分を返す。
func (i *Interviewer) Category() InterviewerCategory { return i.category }

// UniversityID は出身大学IDを返す。未設定の場合はゼロ値。
func (i *Interviewer) UniversityID() ID { return i.universityID }

// FacultyID は出身学部IDを返す。未設定の場合はゼロ値。
func (i *Interviewer) FacultyID() ID { return i.facultyID }
