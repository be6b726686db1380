package stream

// fadeStep is the per-sample output ramp increment. At 44.1 kHz the full
// ramp spans about 12 ms.
const fadeStep = 1.0 / 512

// fill is the output callback, invoked on the driver's thread. It drains
// the ring, ramps the fade level toward 1 while samples flow and toward 0
// on underrun so starts, stops and starvation never click, forwards a
// downmixed copy to the visualizer tap, and writes volume-scaled samples
// to the device. Its only lock is the ring's, held for one bounded pop.
func (p *Pipeline) fill(out []float32) {
	if len(p.popBuf) < len(out) {
		p.popBuf = make([]float64, len(out))
		p.monoBuf = make([]float64, len(out))
	}
	buf := p.popBuf[:len(out)]
	n := p.ring.Pop(buf)

	for i := range buf {
		if i < n {
			if p.fade < 1 {
				p.fade += fadeStep
				if p.fade > 1 {
					p.fade = 1
				}
			}
		} else if p.fade > 0 {
			p.fade -= fadeStep
			if p.fade < 0 {
				p.fade = 0
			}
		}
		buf[i] *= p.fade
	}

	// The visualizer sees the faded signal before volume scaling, so a
	// low listening volume does not flatten the bars.
	if tap := p.visTap.Load(); tap != nil {
		ch := p.channels
		if ch < 1 {
			ch = 1
		}
		frames := len(buf) / ch
		mono := p.monoBuf[:frames]
		for f := 0; f < frames; f++ {
			sum := 0.0
			for c := 0; c < ch; c++ {
				sum += buf[f*ch+c]
			}
			mono[f] = sum / float64(ch)
		}
		tap.Push(mono)
	}

	// Perceptual volume: cubic taper from the shared 0-100 value.
	v := float64(p.volume.Load()) / 100
	gain := v * v * v
	for i, s := range buf {
		out[i] = float32(s * gain)
	}
}
