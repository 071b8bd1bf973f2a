// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER         = 0x8892
	COLOR_BUFFER_BIT     = 0x4000
	COMPILE_STATUS       = 0x8b81
	ELEMENT_ARRAY_BUFFER = 0x8893
	FALSE                = 0
	FLOAT                = 0x1406
	FRAGMENT_SHADER      = 0x8b30
	INFO_LOG_LENGTH      = 0x8B84
	LINK_STATUS          = 0x8b82
	NO_ERROR             = 0x0
	RENDERER             = 0x1F01
	RGBA                 = 0x1908
	STATIC_DRAW          = 0x88e4
	TRIANGLES            = 0x4
	TRUE                 = 1
	UNSIGNED_BYTE        = 0x1401
	UNSIGNED_INT         = 0x1405
	VERSION              = 0x1f02
	VERTEX_SHADER        = 0x8b31
)
