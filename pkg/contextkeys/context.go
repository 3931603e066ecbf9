package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// UserIDContextKey - ключ, по которому хранится ID аутентифицированного
// пользователя в request context (используется вне gin, напр. в ws)
const UserIDContextKey = contextKey("userID")

// RoleContextKey - ключ для роли пользователя
const RoleContextKey = contextKey("role")
