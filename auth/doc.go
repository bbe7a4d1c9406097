// Package auth guards the corridor write endpoints with HS256 bearer
// tokens. Dispatch consoles receive tokens signed with the shared
// auth.jwt_secret; handlers read the verified claims from the request
// context with ClaimsFrom.
package auth
