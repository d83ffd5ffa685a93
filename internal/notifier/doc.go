// Package notifier controls the lifecycle of the background notifier.
//
// The daemon itself runs as a separate OS process; this package only talks
// to whatever supervises it through the narrow [Supervisor] interface:
//
//	Register / Deregister   install or remove the daemon's registration
//	Start / Stop            change its run state
//	State                   observe NotRegistered, Stopped, Running or Unknown
//
// [Manager] implements the idempotent start, stop, restart and delete
// operations on top of any Supervisor. Two supervisors ship with nofan:
//
//   - [ServiceSupervisor] registers a user-level system service through
//     kardianos/service (systemd --user, launchd agent, Windows service).
//   - [DetachedSupervisor] spawns a detached child process and tracks it
//     with a pid file, for systems without a usable service manager.
//
// [RunService] is the daemon side: it hosts a [Runner] under the service
// manager's start/stop protocol.
package notifier
