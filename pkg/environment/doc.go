// Package environment carries the deployment environment (development,
// staging, production) through request contexts. The error handler uses it
// to decide whether raw error details may be shown to the user.
package environment
