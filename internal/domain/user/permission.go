package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Attendance
	PermissionAttendanceMark    Permission = "attendance.mark"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Leave
	PermissionLeaveRequest Permission = "leave.request"
	PermissionLeaveResolve Permission = "leave.resolve"

	// Work schedules
	PermissionScheduleViewOwn Permission = "schedule.view_own"
	PermissionScheduleManage  Permission = "schedule.manage"

	// Positions and units
	PermissionPositionManage Permission = "position.manage"

	// Tasks
	PermissionTaskViewOwn Permission = "task.view_own"
	PermissionTaskManage  Permission = "task.manage"

	// User Management
	PermissionUserView   Permission = "user.view"
	PermissionUserUpdate Permission = "user.update"
	PermissionUserManage Permission = "user.manage"
)

var staffPermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionAttendanceMark,
	PermissionAttendanceViewOwn,
	PermissionLeaveRequest,
	PermissionScheduleViewOwn,
	PermissionTaskViewOwn,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: append([]Permission{
		PermissionAttendanceManage,
		PermissionLeaveResolve,
		PermissionScheduleManage,
		PermissionPositionManage,
		PermissionTaskManage,
		PermissionUserView,
		PermissionUserUpdate,
		PermissionUserManage,
	}, staffPermissions...),
	RoleHR: append([]Permission{
		PermissionAttendanceManage,
		PermissionLeaveResolve,
		PermissionScheduleManage,
		PermissionPositionManage,
		PermissionTaskManage,
		PermissionUserView,
		PermissionUserUpdate,
	}, staffPermissions...),
	RoleStaff: staffPermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
