package contextkeys

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestID"

// TokenCookie is the cookie the browser client carries the JWT in.
const TokenCookie = "token"
