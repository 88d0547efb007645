package model

import "time"

// AuditStamp は永続化済みの監査情報を復元用に受け渡すための構造体。
type AuditStamp struct {
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
}

// audit は監査メタデータを保持する。
// createdAt/createdByは構築後不変。updatedAt/updatedByは
// markAsUpdated経由でのみ更新される。
type audit struct {
	createdAt time.Time
	createdBy ID
	updatedAt time.Time
	updatedBy ID
}

// newAudit は新規作成時の監査情報を生成する。
func newAudit(by ID) audit {
	now := time.Now().UTC()
	return audit{
		createdAt: now,
		createdBy: by,
		updatedAt: now,
		updatedBy: by,
	}
}

// restoreAudit は永続化済みの監査情報を検証して復元する。
func restoreAudit(stamp AuditStamp) (audit, error) {
	createdBy, err := NewID(stamp.CreatedBy, "作成者ID")
	if err != nil {
		return audit{}, err
	}
	updatedBy, err := NewID(stamp.UpdatedBy, "更新者ID")
	if err != nil {
		return audit{}, err
	}
	return audit{
		createdAt: stamp.CreatedAt,
		createdBy: createdBy,
		updatedAt: stamp.UpdatedAt,
		updatedBy: updatedBy,
	}, nil
}

// markAsUpdated は更新日時と更新者を記録する。
// 振る舞いメソッドが実際に状態を変更した場合にのみ呼び出すこと。
func (a *audit) markAsUpdated(by ID) {
	a.updatedAt = time.Now().UTC()
	a.updatedBy = by
}

// CreatedAt は作成日時を返す。
func (a *audit) CreatedAt() time.Time { return a.createdAt }

// CreatedBy は作成者IDを返す。
func (a *audit) CreatedBy() ID { return a.createdBy }

// UpdatedAt は最終更新日時を返す。
func (a *audit) UpdatedAt() time.Time { return a.updatedAt }

// UpdatedBy は最終更新者IDを返す。
func (a *audit) UpdatedBy() ID { return a.updatedBy }
