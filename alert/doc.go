// Package alert sends the emergency SMS that carries an accident location
// to a responder's phone. Messages go out through the Twilio REST API.
package alert
