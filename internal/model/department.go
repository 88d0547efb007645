package model

// Department は部署エンティティ。
// 所属ユーザーが存在する間は削除できない（ストレージの外部キー制約で担保し、
// リポジトリ層でドメインエラーに変換する）。
type Department struct {
	id   ID
	name Name
	audit
}

// NewDepartment は新しいIDを採番して部署を生成する。
func NewDepartment(name string, createdBy ID) (*Department, error) {
	n, err := NewName(name, "部署名")
	if err != nil {
		return nil, err
	}
	return &Department{
		id:    MintID(),
		name:  n,
		audit: newAudit(createdBy),
	}, nil
}

// RestoreDepartment は永続化済みの状態から部署を復元する。
func RestoreDepartment(id, name string, stamp AuditStamp) (*Department, error) {
	restoredID, err := NewID(id, "部署ID")
	if err != nil {
		return nil, err
	}
	n, err := NewName(name, "部署名")
	if err != nil {
		return nil, err
	}
	a, err := restoreAudit(stamp)
	if err != nil {
		return nil, err
	}
	return &Department{id: restoredID, name: n, audit: a}, nil
}

// ChangeName は部署名を変更する。現在と同じ名称の場合は何もしない。
func (d *Department) ChangeName(name string, by ID) error {
	n, err := NewName(name, "部署名")
	if err != nil {
		return err
	}
	if n == d.name {
		return nil
	}
	d.name = n
	d.markAsUpdated(by)
	return nil
}

// Equals は主キーによる同一性比較を行う。
func (d *Department) Equals(other *Department) bool {
	return other != nil && d.id == other.id
}

// ID は部署IDを返す。
func (d *Department) ID() ID { return d.id }

// Name は部署名を返す。
func (d *Department) Name() Name { return d.name }
