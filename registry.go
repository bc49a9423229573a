package multiaddr

import (
	"fmt"
)

// Registry 协议注册表
//
// 支持按代码和按名称 O(1) 查找。注册表分锁定/未锁定两种状态：
// 锁定后任何修改操作都会失败，因此多个 goroutine 可以在不加锁的
// 情况下并发查询同一个锁定的注册表。需要扩展时通过 Copy(true)
// 获得独立的未锁定快照，修改完成后调用 Lock 重新锁定；
// 未锁定的注册表在被修改期间不得跨 goroutine 共享。
type Registry struct {
	locked bool
	byCode map[int]Protocol
	byName map[string]Protocol

	// codes 记录注册顺序（不含别名）
	codes []int
}

// NewRegistry 创建一个空的未锁定注册表
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[int]Protocol),
		byName: make(map[string]Protocol),
	}
}

// Locked 报告注册表是否已锁定
func (r *Registry) Locked() bool {
	return r.locked
}

// Lock 锁定注册表，此后所有修改操作都会失败
func (r *Registry) Lock() {
	r.locked = true
}

// Add 注册一个协议
//
// 注册表已锁定时返回 ErrRegistryLocked；
// 代码或名称已存在时返回 ErrProtocolExists。
func (r *Registry) Add(p Protocol) error {
	if r.locked {
		return fmt.Errorf("%w: cannot add protocol %q", ErrRegistryLocked, p.Name)
	}
	if p.Name == "" {
		return fmt.Errorf("protocol name must not be empty")
	}
	if p.Code <= 0 {
		return fmt.Errorf("protocol %q: invalid code %d", p.Name, p.Code)
	}
	if _, ok := r.byCode[p.Code]; ok {
		return fmt.Errorf("%w: code %d", ErrProtocolExists, p.Code)
	}
	if _, ok := r.byName[p.Name]; ok {
		return fmt.Errorf("%w: name %q", ErrProtocolExists, p.Name)
	}

	if len(p.VCode) == 0 {
		vc, err := CodeToVarint(p.Code)
		if err != nil {
			return err
		}
		p.VCode = vc
	}

	r.byCode[p.Code] = p
	r.byName[p.Name] = p
	r.codes = append(r.codes, p.Code)
	return nil
}

// AddAlias 为已注册的协议添加一个额外名称（如 "ipfs" -> "p2p"）
func (r *Registry) AddAlias(alias, name string) error {
	if r.locked {
		return fmt.Errorf("%w: cannot add alias %q", ErrRegistryLocked, alias)
	}
	if _, ok := r.byName[alias]; ok {
		return fmt.Errorf("%w: name %q", ErrProtocolExists, alias)
	}
	proto, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: name %q", ErrProtocolNotFound, name)
	}
	r.byName[alias] = proto
	return nil
}

// FindByCode 根据协议代码查找协议
func (r *Registry) FindByCode(code int) (Protocol, error) {
	proto, ok := r.byCode[code]
	if !ok {
		return Protocol{}, fmt.Errorf("%w: code %d", ErrProtocolNotFound, code)
	}
	return proto, nil
}

// FindByName 根据协议名称（或别名）查找协议
func (r *Registry) FindByName(name string) (Protocol, error) {
	proto, ok := r.byName[name]
	if !ok {
		return Protocol{}, fmt.Errorf("%w: name %q", ErrProtocolNotFound, name)
	}
	return proto, nil
}

// Copy 返回注册表的独立快照
//
// unlock 为 true 时快照处于未锁定状态，可继续注册协议；
// 对快照的修改不影响原注册表。
func (r *Registry) Copy(unlock bool) *Registry {
	cp := NewRegistry()
	for code, proto := range r.byCode {
		cp.byCode[code] = proto
	}
	for name, proto := range r.byName {
		cp.byName[name] = proto
	}
	cp.codes = append(cp.codes, r.codes...)
	cp.locked = !unlock
	return cp
}

// Protocols 按注册顺序返回所有协议（不含别名）
func (r *Registry) Protocols() []Protocol {
	ps := make([]Protocol, 0, len(r.codes))
	for _, code := range r.codes {
		ps = append(ps, r.byCode[code])
	}
	return ps
}

// DefaultRegistry 全局默认注册表
//
// 在包初始化时构建并锁定，之后只读。NewMultiaddr 等包级 API
// 都基于该注册表。
var DefaultRegistry = buildDefaultRegistry()

func buildDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range defaultProtocols {
		if err := r.Add(p); err != nil {
			panic(err)
		}
	}
	if err := r.AddAlias("ipfs", "p2p"); err != nil {
		panic(err)
	}
	r.Lock()
	return r
}
