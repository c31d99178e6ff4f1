package component

// RespawnRequest marks a player that must be moved back to its spawn point.
// The respawn system runs after physics and clears the marker.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
