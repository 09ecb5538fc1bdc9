package stage

// Positioned 可被摄像机追踪的对象
type Positioned interface {
	// Position 返回中心位置（米）
	Position() (x, y float64)
}

// Camera 屏幕坐标和场景坐标（米）之间的映射
//
// 每个场景（世界、HUD、弹出层）持有自己的摄像机。
// HUD 和弹出层的摄像机固定在原点；世界摄像机可以追踪 actor
// 并被场景边界约束。
type Camera struct {
	screenWidth  float64 // 逻辑屏幕宽（像素）
	screenHeight float64 // 逻辑屏幕高（像素）
	ratio        float64 // 每米像素数

	// 视口左上角在场景中的位置（米）
	x, y float64

	// 场景边界（米），0 表示该方向不限制
	boundWidth, boundHeight float64

	chase Positioned
}

// NewCamera 创建摄像机
func NewCamera(screenWidth, screenHeight int, pixelMeterRatio float64) *Camera {
	return &Camera{
		screenWidth:  float64(screenWidth),
		screenHeight: float64(screenHeight),
		ratio:        pixelMeterRatio,
	}
}

// ScreenToMeters 屏幕像素坐标转场景坐标
func (c *Camera) ScreenToMeters(sx, sy float64) (x, y float64) {
	return c.x + sx/c.ratio, c.y + sy/c.ratio
}

// MetersToScreen 场景坐标转屏幕像素坐标
func (c *Camera) MetersToScreen(x, y float64) (sx, sy float64) {
	return (x - c.x) * c.ratio, (y - c.y) * c.ratio
}

// Ratio 返回每米像素数
func (c *Camera) Ratio() float64 {
	return c.ratio
}

// ViewMeters 返回视口尺寸（米）
func (c *Camera) ViewMeters() (w, h float64) {
	return c.screenWidth / c.ratio, c.screenHeight / c.ratio
}

// SetBounds 设置场景边界（米）
// 摄像机视口不会越过 [0,0]~[width,height]。传 0 取消该方向的限制。
func (c *Camera) SetBounds(width, height float64) {
	c.boundWidth = width
	c.boundHeight = height
	c.clamp()
}

// SetChase 让摄像机每帧把视口中心对准目标
func (c *Camera) SetChase(p Positioned) {
	c.chase = p
}

// ClearChase 停止追踪
func (c *Camera) ClearChase() {
	c.chase = nil
}

// Offset 返回视口左上角位置（米）
func (c *Camera) Offset() (x, y float64) {
	return c.x, c.y
}

// SetOffset 直接设置视口左上角位置（米），会被边界约束
func (c *Camera) SetOffset(x, y float64) {
	c.x = x
	c.y = y
	c.clamp()
}

// Update 重新计算摄像机焦点
// 有追踪目标时把目标放在视口中心，然后应用边界约束。
func (c *Camera) Update() {
	if c.chase != nil {
		tx, ty := c.chase.Position()
		vw, vh := c.ViewMeters()
		c.x = tx - vw/2
		c.y = ty - vh/2
	}
	c.clamp()
}

// clamp 把视口约束在场景边界内
// 边界小于视口时贴齐原点（场景整体可见，不来回抖动）。
func (c *Camera) clamp() {
	vw, vh := c.ViewMeters()
	if c.boundWidth > 0 {
		if c.x > c.boundWidth-vw {
			c.x = c.boundWidth - vw
		}
		if c.x < 0 || c.boundWidth <= vw {
			c.x = 0
		}
	}
	if c.boundHeight > 0 {
		if c.y > c.boundHeight-vh {
			c.y = c.boundHeight - vh
		}
		if c.y < 0 || c.boundHeight <= vh {
			c.y = 0
		}
	}
}
