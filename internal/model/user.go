package model

// Role はユーザーの権限ロールを表す。
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleMaster Role = "master"
)

// NewRole はロールを検証して構築する。
func NewRole(value string) (Role, error) {
	switch Role(value) {
	case RoleUser, RoleAdmin, RoleMaster:
		return Role(value), nil
	}
	if value == "" {
		return "", NewRequiredFieldError("ロール")
	}
	return "", NewFormatError("ロール", value)
}

// String はロール文字列を返す。
func (r Role) String() string {
	return string(r)
}

// Gender は性別を表す。任意項目のため空文字列（未設定）を許容する。
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// NewGender は性別を検証して構築する。空文字列は未設定として許容する。
func NewGender(value string) (Gender, error) {
	switch Gender(value) {
	case "", GenderMale, GenderFemale, GenderOther:
		return Gender(value), nil
	}
	return "", NewFormatError("性別", value)
}

// String は性別文字列を返す。
func (g Gender) String() string {
	return string(g)
}

// User は社内ユーザーエンティティ。ちょうど1つの部署に属する。
// メールアドレスはストレージの一意制約で一意に保たれる。
type User struct {
	id           ID
	email        Email
	role         Role
	firstName    Name
	lastName     Name
	gender       Gender
	departmentID ID
	audit
}

// NewUser は新しいIDを採番してユーザーを生成する。
func NewUser(email, role, firstName, lastName, gender string, departmentID ID, createdBy ID) (*User, error) {
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	r, err := NewRole(role)
	if err != nil {
		return nil, err
	}
	first, err := NewName(firstName, "名")
	if err != nil {
		return nil, err
	}
	last, err := NewName(lastName, "姓")
	if err != nil {
		return nil, err
	}
	g, err := NewGender(gender)
	if err != nil {
		return nil, err
	}
	if departmentID.IsZero() {
		return nil, NewRequiredFieldError("部署ID")
	}
	return &User{
		id:           MintID(),
		email:        e,
		role:         r,
		firstName:    first,
		lastName:     last,
		gender:       g,
		departmentID: departmentID,
		audit:        newAudit(createdBy),
	}, nil
}

// RestoreUser は永続化済みの状態からユーザーを復元する。
func RestoreUser(id, email, role, firstName, lastName, gender, departmentID string, stamp AuditStamp) (*User, error) {
	restoredID, err := NewID(id, "ユーザーID")
	if err != nil {
		return nil, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	r, err := NewRole(role)
	if err != nil {
		return nil, err
	}
	first, err := NewName(firstName, "名")
	if err != nil {
		return nil, err
	}
	last, err := NewName(lastName, "姓")
	if err != nil {
		return nil, err
	}
	g, err := NewGender(gender)
	if err != nil {
		return nil, err
	}
	did, err := NewID(departmentID, "部署ID")
	if err != nil {
		return nil, err
	}
	a, err := restoreAudit(stamp)
	if err != nil {
		return nil, err
	}
	return &User{
		id:           restoredID,
		email:        e,
		role:         r,
		firstName:    first,
		lastName:     last,
		gender:       g,
		departmentID: did,
		audit:        a,
	}, nil
}

// ChangeEmail はメールアドレスを変更する。現在と同じ場合は何もしない。
func (u *User) ChangeEmail(email string, by ID) error {
	e, err := NewEmail(email)
	if err != nil {
		return err
	}
	if e == u.email {
		return nil
	}
	u.email = e
	u.markAsUpdated(by)
	return nil
}

// ChangeRole はロールを変更する。現在と同じ場合は何もしない。
func (u *User) ChangeRole(role string, by ID) error {
	r, err := NewRole(role)
	if err != nil {
		return err
	}
	if r == u.role {
		return nil
	}
	u.role = r
	u.markAsUpdated(by)
	return nil
}

// ChangeDepartment は所属部署を変更する。現在と同じ場合は何もしない。
func (u *User) ChangeDepartment(departmentID string, by ID) error {
	did, err := NewID(departmentID, "部署ID")
	if err != nil {
		return err
	}
	if did == u.departmentID {
		return nil
	}
	u.departmentID = did
	u.markAsUpdated(by)
	return nil
}

// UpdateProfile は氏名・性別をまとめて更新する。
// すべて現在と同じ場合は何もしない。検証に失敗した場合は一切変更しない。
func (u *User) UpdateProfile(firstName, lastName, gender string, by ID) error {
	first, err := NewName(firstName, "名")
	if err != nil {
		return err
	}
	last, err := NewName(lastName, "姓")
	if err != nil {
		return err
	}
	g, err := NewGender(gender)
	if err != nil {
		return err
	}
	if first == u.firstName && last == u.lastName && g == u.gender {
		return nil
	}
	u.firstName = first
	u.lastName = last
	u.gender = g
	u.markAsUpdated(by)
	return nil
}

// Equals は主キーによる同一性比較を行う。
func (u *User) Equals(other *User) bool {
	return other != nil && u.id == other.id
}

// ID はユーザーIDを返す。
func (u *User) ID() ID { return u.id }

// Email はメールアドレスを返す。
func (u *User) Email() Email { return u.email }

// Role はロールを返す。
func (u *User) Role() Role { return u.role }

// FirstName は名を返す。
func (u *User) FirstName() Name { return u.firstName }

// LastName は姓を返す。
func (u *User) LastName() Name { return u.lastName }

// Gender は性別を返す。未設定の場合はゼロ値。
func (u *User) Gender() Gender { return u.gender }

// DepartmentID は所属部署IDを返す。
func (u *User) DepartmentID() ID { return u.departmentID }
