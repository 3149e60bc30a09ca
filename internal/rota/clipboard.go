package rota

// Clipboard 最多保存一张被复制的卡片。
// 复制时只保留卡片内容，粘贴时重新生成 ID。
type Clipboard struct {
	item *Assignment
}

func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Copy(a *Assignment) {
	snapshot := a.clone()
	snapshot.ID = ""
	c.item = snapshot
}

func (c *Clipboard) Empty() bool {
	return c.item == nil
}

// Paste 把剪贴板内容以新卡片的形式追加到目标格子（非破坏性追加）。
// 剪贴板为空时返回 nil。
func (c *Clipboard) Paste(g *Grid, key CellKey) *Assignment {
	if c.item == nil {
		return nil
	}

	a := c.item.clone()
	a.ID = newAssignmentID()
	g.cells[key] = append(g.cells[key], a)
	g.dirty = true

	return a
}
