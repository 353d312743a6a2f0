package commands

// Display formats
const (
	// DateTimeFormat renders history timestamps
	DateTimeFormat = "2006-01-02 Mon"
)

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrPlannerUnavailable       = "planner unavailable"
	ErrSchedulerUnavailable     = "notification scheduler unavailable"
	ErrNothingToUpdate          = "nothing to update: pass at least one flag"
)

// Messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgNoPlanSaved              = "No sleep plan saved yet."
	MsgNoPendingReminders       = "No pending reminders."
	MsgSavedToHistory           = "Saved to history!"
)
