package status

// Package status polls service and server status for the landing view:
// Mojang services, the selected game server and the server network.
