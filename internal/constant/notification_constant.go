package constant

const (
	NotificationTitleChoresAdded    = "New chores"
	NotificationTitleGroceriesAdded = "New grocery items"
	NotificationTitleGroupRenamed   = "Group renamed"

	// Placeholders are replaced with the matching event payload fields
	NotificationTemplateChoresAdded    = "{count} new chore(s) were added to your group."
	NotificationTemplateGroceriesAdded = "{count} new item(s) were added to the grocery list."
	NotificationTemplateGroupRenamed   = "Your group \"{old_name}\" is now called \"{new_name}\"."

	NotificationDurableName = "chorewatch-notifier"
)
