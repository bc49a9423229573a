package multiaddr

import (
	"errors"
	"fmt"
)

// 注册表错误
var (
	// ErrProtocolNotFound 注册表中不存在该代码或名称的协议
	ErrProtocolNotFound = errors.New("protocol not found")

	// ErrRegistryLocked 对已锁定的注册表执行了修改操作
	ErrRegistryLocked = errors.New("registry is locked")

	// ErrProtocolExists 协议代码或名称已被注册
	ErrProtocolExists = errors.New("protocol already registered")
)

// StringParseError 表示字符串形式的多地址解析失败
//
// 底层编解码器的任何错误都会在转换引擎边界被包装为该类型，
// 原始错误可通过 Unwrap 获取。
type StringParseError struct {
	// Addr 解析失败的输入字符串
	Addr string

	// Protocol 出错时正在处理的协议名称（可能为空）
	Protocol string

	// Err 底层错误
	Err error
}

func (e *StringParseError) Error() string {
	if e.Protocol != "" {
		return fmt.Sprintf("failed to parse multiaddr %q (protocol %s): %v", e.Addr, e.Protocol, e.Err)
	}
	return fmt.Sprintf("failed to parse multiaddr %q: %v", e.Addr, e.Err)
}

func (e *StringParseError) Unwrap() error {
	return e.Err
}

// BinaryParseError 表示二进制形式的多地址解析失败
//
// 底层编解码器的任何错误都会在转换引擎边界被包装为该类型，
// 原始错误可通过 Unwrap 获取。
type BinaryParseError struct {
	// Bytes 解析失败的输入缓冲区
	Bytes []byte

	// Offset 出错段在缓冲区中的起始偏移
	Offset int

	// Protocol 出错时正在处理的协议名称（可能为空）
	Protocol string

	// Err 底层错误
	Err error
}

func (e *BinaryParseError) Error() string {
	if e.Protocol != "" {
		return fmt.Sprintf("failed to parse multiaddr bytes at offset %d (protocol %s): %v", e.Offset, e.Protocol, e.Err)
	}
	return fmt.Sprintf("failed to parse multiaddr bytes at offset %d: %v", e.Offset, e.Err)
}

func (e *BinaryParseError) Unwrap() error {
	return e.Err
}
