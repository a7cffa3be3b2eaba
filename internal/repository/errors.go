// Package repository 提供了数据访问层的实现。
package repository

import "errors"

// ErrNotFound 表示按 id 更新或删除时目标条目不存在。
var ErrNotFound = errors.New("record not found")
