package model

// All returns every model managed by auto-migration.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&PasswordResetTokenModel{},
		&ExpenseModel{},
		&UserSettingsModel{},
		&QuickNoteModel{},
		&WaterReminderModel{},
		&EmailQueueModel{},
	}
}
