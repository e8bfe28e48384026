package common

const (
	KEY_LOG_HOOK_SEND_ALERT = "send_alert"
)

const (
	TASK_BOOKING_REMINDER_1DAY  = "email.booking_reminder_1day"
	TASK_BOOKING_REMINDER_3DAYS = "email.booking_reminder_3days"
	TASK_BOOKING_CONFIRMATION   = "email.booking_confirmation"
	TASK_PERIODIC               = "periodic_task"
)
