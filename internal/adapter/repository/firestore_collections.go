package repository

const (
	usersCollection          = "users"
	requestsCollection       = "collabRequests"
	collaborationsCollection = "collaborations"
	ratingsCollection        = "ratings"
	notificationsCollection  = "notifications"
	chatsCollection          = "chats"
	messagesCollection       = "messages"
)
