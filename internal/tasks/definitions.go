package tasks

// DefineTasks registers all available tasks
func DefineTasks() {
	// Register general tasks
	RegisterHandler(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)

	// Register settlement tasks
	RegisterHandler(SettlementReminderTask.TaskID(), SettlementReminderTask.HandleExecution)
}
