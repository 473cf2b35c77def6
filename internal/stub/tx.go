package stub

import "gorm.io/gorm"

// withTx runs fn inside a database transaction. The transaction is
// rolled back when fn returns an error or panics, and committed
// otherwise. Handlers that read then write as one unit go through it
// so a failed write never leaves the read's assumptions stale.
func withTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
