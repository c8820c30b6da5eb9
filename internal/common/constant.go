// Package common contains constants and sentinel errors shared by the
// GestureTalk shell packages.
package common

// UserStorageKey is the local storage key holding the serialized current user.
const UserStorageKey = "gesturetalk_user"

// AppName is shown in page titles and the navigation frame.
const AppName = "GestureTalk"
