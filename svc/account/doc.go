// Package account implements sign-in, demo sign-in, registration and
// sign-out on top of the backend auth API, reporting each outcome as a
// Status ready for display.
package account
